package core

import (
	"sort"
	"strings"

	"github.com/zarmaks/gitfolio/schema"
)

// skillSignalTopics maps a catalog skill to the repository topics that count
// as evidence for it. The normalized skill name itself (hyphenated) is
// always tried as a topic too.
var skillSignalTopics = map[string][]string{
	"docker":             {"docker", "containers", "dockerfile"},
	"kubernetes":         {"kubernetes", "k8s", "helm"},
	"monitoring":         {"monitoring", "prometheus", "grafana", "observability"},
	"prompt engineering": {"prompt-engineering", "prompts"},
	"vector databases":   {"vector-database", "vector-search", "embeddings", "pinecone", "weaviate"},
	"rag":                {"rag", "retrieval-augmented-generation", "langchain"},
	"fine tuning":        {"fine-tuning", "transformers", "lora"},
	"react":              {"react", "nextjs"},
	"apis":               {"api", "rest-api", "graphql", "grpc"},
	"databases":          {"database", "postgresql", "mysql", "sqlite", "mongodb"},
	"sql":                {"sql", "postgresql", "mysql"},
	"etl":                {"etl", "data-pipeline", "airflow"},
	"data modeling":      {"data-modeling", "dbt", "data-warehouse"},
	"orchestration":      {"orchestration", "airflow", "prefect", "dagster"},
}

// MatchRole compares an aggregated portfolio against one role from the
// catalog. Unknown roles (after case-insensitive, trimmed lookup including
// aliases) return an UnknownRoleError. Gaps are sorted largest first, ties
// broken by required level descending, then skill name.
func MatchRole(profile *schema.PortfolioProfile, roleName string, catalog []schema.RoleProfile) (schema.GapReport, error) {
	role, err := lookupRole(roleName, catalog)
	if err != nil {
		return schema.GapReport{}, err
	}

	gaps := make([]schema.SkillGap, 0, len(role.Skills))
	for _, skill := range role.Skills {
		observed := ObservedSkillLevel(profile, skill.Skill)
		resources := make([]string, len(skill.Resources))
		copy(resources, skill.Resources)
		gaps = append(gaps, schema.SkillGap{
			Skill:     skill.Skill,
			Observed:  observed,
			Required:  skill.Required,
			Gap:       skill.Required - observed,
			Resources: resources,
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Gap != gaps[j].Gap {
			return gaps[i].Gap > gaps[j].Gap
		}
		if gaps[i].Required != gaps[j].Required {
			return gaps[i].Required > gaps[j].Required
		}
		return gaps[i].Skill < gaps[j].Skill
	})

	return schema.GapReport{Role: role.Name, Gaps: gaps}, nil
}

// ObservedSkillLevel estimates the portfolio's proficiency in one skill as
// the strongest of three signals: byte share of a matching language,
// fraction of repositories carrying a matching topic, and tooling fractions
// for process skills. The result is clamped to [0,1].
func ObservedSkillLevel(profile *schema.PortfolioProfile, skill string) float64 {
	normalized := schema.NormalizeRoleName(skill)
	observed := 0.0

	// Language signal: byte-weighted share of the matching language.
	for lang, frac := range profile.LanguageDistribution {
		if strings.ToLower(lang) == normalized {
			observed = max(observed, frac)
		}
	}

	// Topic signal: fraction of repositories carrying a matching topic.
	if profile.RepositoryCount > 0 {
		topics := append([]string{strings.ReplaceAll(normalized, " ", "-")}, skillSignalTopics[normalized]...)
		for _, topic := range topics {
			count := profile.TopicCounts[topic]
			observed = max(observed, float64(count)/float64(profile.RepositoryCount))
		}
	}

	// Tooling signals for process skills.
	switch normalized {
	case "ci cd", "ci/cd":
		observed = max(observed, profile.CIFraction)
	case "testing":
		observed = max(observed, profile.TestsFraction)
	}

	return clamp01(observed)
}

// lookupRole resolves a role by normalized name or alias.
func lookupRole(name string, catalog []schema.RoleProfile) (*schema.RoleProfile, error) {
	key := schema.NormalizeRoleName(name)
	for i := range catalog {
		if schema.NormalizeRoleName(catalog[i].Name) == key {
			return &catalog[i], nil
		}
		for _, alias := range catalog[i].Aliases {
			if schema.NormalizeRoleName(alias) == key {
				return &catalog[i], nil
			}
		}
	}
	return nil, &UnknownRoleError{Role: name, Known: RoleNames(catalog)}
}

// RoleNames returns the sorted canonical role names in the catalog.
func RoleNames(catalog []schema.RoleProfile) []string {
	names := make([]string, 0, len(catalog))
	for _, role := range catalog {
		names = append(names, role.Name)
	}
	sort.Strings(names)
	return names
}
