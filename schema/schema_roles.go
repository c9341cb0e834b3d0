package schema

import "strings"

// RoleSkill is one skill requirement inside a role profile. Required is the
// target proficiency level in [0,1]. Resources lists learning material for
// closing the gap and is never nil.
type RoleSkill struct {
	Skill     string   `json:"skill"`
	Required  float64  `json:"required"`
	Resources []string `json:"resources"`
}

// RoleProfile describes a target engineering role: the skills it needs and
// the portfolio projects that typically demonstrate them. Aliases are
// alternative normalized names that resolve to this role.
type RoleProfile struct {
	Name     string      `json:"name"`
	Skills   []RoleSkill `json:"skills"`
	Projects []string    `json:"projects"`
	Aliases  []string    `json:"-"`
}

// SkillGap is one row of a gap report. Gap = Required - Observed; entries
// with Gap <= 0 are retained in the full report but excluded from TopGaps.
type SkillGap struct {
	Skill     string   `json:"skill"`
	Observed  float64  `json:"observed"`
	Required  float64  `json:"required"`
	Gap       float64  `json:"gap"`
	Resources []string `json:"resources"`
}

// GapReport is the result of matching a portfolio against one role. Gaps are
// sorted by gap descending, ties broken by required level descending.
type GapReport struct {
	Role string     `json:"role"`
	Gaps []SkillGap `json:"gaps"`
}

// TopGaps returns the gaps with a positive shortfall, up to limit entries.
// A limit <= 0 means no cap.
func (g *GapReport) TopGaps(limit int) []SkillGap {
	out := make([]SkillGap, 0, len(g.Gaps))
	for _, gap := range g.Gaps {
		if gap.Gap <= 0 {
			continue
		}
		out = append(out, gap)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// NormalizeRoleName canonicalizes a user-supplied role name for catalog
// lookup: lowercased, trimmed, with underscores and hyphens treated as
// spaces and runs of spaces collapsed.
func NormalizeRoleName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// GetDefaultRoleCatalog returns the built-in role catalog. Callers must not
// mutate the returned profiles.
func GetDefaultRoleCatalog() []RoleProfile {
	return []RoleProfile{
		{
			Name: "MLOps Engineer",
			Skills: []RoleSkill{
				{Skill: "python", Required: 0.8, Resources: resourcesFor("python")},
				{Skill: "docker", Required: 0.7, Resources: resourcesFor("docker")},
				{Skill: "kubernetes", Required: 0.6, Resources: resourcesFor("kubernetes")},
				{Skill: "ci/cd", Required: 0.7, Resources: resourcesFor("ci/cd")},
				{Skill: "monitoring", Required: 0.5, Resources: resourcesFor("monitoring")},
			},
			Projects: []string{
				"End-to-end ML pipeline with automated retraining",
				"Model serving API with containerized deployment",
				"Experiment tracking and model registry setup",
			},
			Aliases: []string{"mlops", "mlops engineer", "ml ops"},
		},
		{
			Name: "LLM Engineer",
			Skills: []RoleSkill{
				{Skill: "python", Required: 0.8, Resources: resourcesFor("python")},
				{Skill: "prompt engineering", Required: 0.7, Resources: resourcesFor("prompt engineering")},
				{Skill: "vector databases", Required: 0.6, Resources: resourcesFor("vector databases")},
				{Skill: "rag", Required: 0.7, Resources: resourcesFor("rag")},
				{Skill: "fine-tuning", Required: 0.5, Resources: resourcesFor("fine-tuning")},
			},
			Projects: []string{
				"RAG application over a custom document corpus",
				"LLM evaluation harness with automated scoring",
				"Fine-tuned model for a domain-specific task",
			},
			Aliases: []string{"llm", "llm engineer", "ai engineer"},
		},
		{
			Name: "Full Stack AI Developer",
			Skills: []RoleSkill{
				{Skill: "python", Required: 0.7, Resources: resourcesFor("python")},
				{Skill: "javascript", Required: 0.7, Resources: resourcesFor("javascript")},
				{Skill: "react", Required: 0.6, Resources: resourcesFor("react")},
				{Skill: "apis", Required: 0.7, Resources: resourcesFor("apis")},
				{Skill: "databases", Required: 0.6, Resources: resourcesFor("databases")},
			},
			Projects: []string{
				"AI-powered web application with a React frontend",
				"Full stack chatbot with streaming responses",
				"Dashboard visualizing model predictions",
			},
			Aliases: []string{"full stack ai", "fullstack ai", "full stack ai developer"},
		},
		{
			Name: "Backend Engineer",
			Skills: []RoleSkill{
				{Skill: "go", Required: 0.7, Resources: resourcesFor("go")},
				{Skill: "databases", Required: 0.7, Resources: resourcesFor("databases")},
				{Skill: "apis", Required: 0.8, Resources: resourcesFor("apis")},
				{Skill: "docker", Required: 0.6, Resources: resourcesFor("docker")},
				{Skill: "testing", Required: 0.7, Resources: resourcesFor("testing")},
			},
			Projects: []string{
				"REST or gRPC service with persistence and migrations",
				"Message-queue worker with retry semantics",
				"High-throughput API with load test results",
			},
			Aliases: []string{"backend", "backend engineer", "backend developer"},
		},
		{
			Name: "Data Engineer",
			Skills: []RoleSkill{
				{Skill: "python", Required: 0.7, Resources: resourcesFor("python")},
				{Skill: "sql", Required: 0.8, Resources: resourcesFor("sql")},
				{Skill: "etl", Required: 0.7, Resources: resourcesFor("etl")},
				{Skill: "data modeling", Required: 0.6, Resources: resourcesFor("data modeling")},
				{Skill: "orchestration", Required: 0.5, Resources: resourcesFor("orchestration")},
			},
			Projects: []string{
				"Batch ETL pipeline with data quality checks",
				"Streaming ingestion into a warehouse",
				"Dimensional model with documented lineage",
			},
			Aliases: []string{"data engineer", "data engineering"},
		},
	}
}

// skillResources maps a skill to curated learning material. Unknown skills
// fall back to an empty (non-nil) slice so report consumers never see null.
var skillResources = map[string][]string{
	"python":             {"https://docs.python.org/3/tutorial/", "https://realpython.com/"},
	"go":                 {"https://go.dev/tour/", "https://gobyexample.com/"},
	"javascript":         {"https://developer.mozilla.org/docs/Web/JavaScript", "https://javascript.info/"},
	"react":              {"https://react.dev/learn"},
	"docker":             {"https://docs.docker.com/get-started/"},
	"kubernetes":         {"https://kubernetes.io/docs/tutorials/"},
	"ci/cd":              {"https://docs.github.com/actions", "https://www.jenkins.io/doc/tutorials/"},
	"monitoring":         {"https://prometheus.io/docs/introduction/overview/"},
	"prompt engineering": {"https://www.promptingguide.ai/"},
	"vector databases":   {"https://www.pinecone.io/learn/vector-database/"},
	"rag":                {"https://python.langchain.com/docs/tutorials/rag/"},
	"fine-tuning":        {"https://huggingface.co/docs/transformers/training"},
	"apis":               {"https://restfulapi.net/", "https://grpc.io/docs/"},
	"databases":          {"https://use-the-index-luke.com/"},
	"sql":                {"https://mode.com/sql-tutorial/"},
	"etl":                {"https://airflow.apache.org/docs/"},
	"data modeling":      {"https://www.kimballgroup.com/data-warehouse-business-intelligence-resources/"},
	"orchestration":      {"https://airflow.apache.org/docs/apache-airflow/stable/tutorial/"},
	"testing":            {"https://go.dev/doc/tutorial/add-a-test"},
}

func resourcesFor(skill string) []string {
	if res, ok := skillResources[skill]; ok {
		out := make([]string, len(res))
		copy(out, res)
		return out
	}
	return []string{}
}
