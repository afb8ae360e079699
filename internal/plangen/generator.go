package plangen

import (
	"fmt"
	"strings"
)

// SchemaTable is one (table, description) row of the fixed schema section.
type SchemaTable struct {
	Table       string `json:"table"`
	Description string `json:"description"`
}

// PlanDocument is the generated project plan returned to the client.
// Persisted and PersistenceMessage are filled in by the handler after the
// write path runs (or is skipped).
type PlanDocument struct {
	Summary            string        `json:"summary"`
	Architecture       []string      `json:"architecture"`
	DatabaseSchema     []SchemaTable `json:"databaseSchema"`
	Roadmap            []string      `json:"roadmap"`
	ExportOptions      []string      `json:"exportOptions"`
	Persisted          bool          `json:"persisted"`
	PersistenceMessage string        `json:"persistenceMessage,omitempty"`
}

const mobileKeyword = "mobile"

var baseArchitecture = []string{
	"Next.js 14 + Tailwind web/PWA front end",
	"Supabase Auth & Postgres for user and idea management",
	"OpenAI API for dynamic project plan generation",
	"n8n automation flows for GitHub/Vercel",
}

const mobileArchitectureEntry = "Expo (React Native) iOS & Android clients"

var databaseSchema = []SchemaTable{
	{Table: "profiles", Description: "User plan, profile and billing details"},
	{Table: "ideas", Description: "Idea answers and creation timestamps"},
	{Table: "ai_plans", Description: "Stored AI output: architecture, schema and roadmap data"},
	{Table: "templates", Description: "Template metadata and access tiers"},
	{Table: "usage_logs", Description: "Daily limits and integration usage history"},
}

var roadmap = []string{
	"Apply the Supabase schema and RLS policies",
	"Connect the idea form to Supabase and the AI service",
	"Enrich the AI plan output with template downloads & automation integrations",
	"Enable Pro plan payments through Stripe/Iyzico",
	"Finish deployment and monitoring for the PWA + mobile clients",
}

var baseExportOptions = []string{
	"Generate ZIP bundle",
	"Create GitHub repository",
	"Trigger Vercel deploy",
}

const mobileExportOption = "Start Expo EAS build queue"

// mentionsMobile is the predicate deciding whether the conditional
// architecture/export entries are appended.
func mentionsMobile(text string) bool {
	return strings.Contains(strings.ToLower(text), mobileKeyword)
}

// Generate maps a validated submission to its plan document. Pure and
// deterministic; the caller is responsible for validation.
func Generate(sub Submission) PlanDocument {
	summary := buildSummary(sub)
	return PlanDocument{
		Summary:        summary,
		Architecture:   buildArchitecture(sub.Solution),
		DatabaseSchema: buildDatabaseSchema(),
		Roadmap:        buildRoadmap(),
		ExportOptions:  buildExportOptions(summary),
	}
}

func buildSummary(sub Submission) string {
	return fmt.Sprintf(
		"Cafeoi proposes an AI-assisted application for %s that solves %s with a %s approach.",
		strings.ToLower(strings.TrimSpace(sub.TargetUser)),
		strings.ToLower(strings.TrimSpace(sub.Problem)),
		strings.ToLower(strings.TrimSpace(sub.Solution)),
	)
}

func buildArchitecture(solution string) []string {
	patterns := append([]string(nil), baseArchitecture...)
	if mentionsMobile(solution) {
		patterns = append(patterns, mobileArchitectureEntry)
	}
	return patterns
}

func buildDatabaseSchema() []SchemaTable {
	return append([]SchemaTable(nil), databaseSchema...)
}

func buildRoadmap() []string {
	return append([]string(nil), roadmap...)
}

// buildExportOptions checks the generated summary, not the raw solution, so
// the extra option tracks exactly what the summary tells the user.
func buildExportOptions(summary string) []string {
	options := append([]string(nil), baseExportOptions...)
	if mentionsMobile(summary) {
		options = append(options, mobileExportOption)
	}
	return options
}
