package prompts

import "strings"

type Role string

const (
	RoleUser   Role = "user"
	RoleLawyer Role = "lawyer"
	RoleAdmin  Role = "admin"
)

type Jurisdiction string

const (
	JurisdictionUS    Jurisdiction = "US"
	JurisdictionEU    Jurisdiction = "EU"
	JurisdictionOther Jurisdiction = "OTHER"
)

var roleTemplates = map[Role]string{
	RoleUser:   "Provide a concise, helpful response.",
	RoleLawyer: "Offer detailed legal analysis tailored for professionals.",
	RoleAdmin:  "Return high level administrative guidance.",
}

var jurisdictionTemplates = map[Jurisdiction]string{
	JurisdictionUS:    "Reference United States law.",
	JurisdictionEU:    "Reference European Union law.",
	JurisdictionOther: "Reference general international legal principles.",
}

// Session is per-turn metadata. History is chronological.
type Session struct {
	History      []string `json:"history"`
	Role         string   `json:"role"`
	Jurisdiction string   `json:"jurisdiction"`
}

func (s Session) Template() string {
	return BuildTemplate(s.History, s.Role, s.Jurisdiction)
}

// NormalizeRole maps unknown roles to RoleUser.
func NormalizeRole(role string) Role {
	if _, ok := roleTemplates[Role(role)]; ok {
		return Role(role)
	}
	return RoleUser
}

// NormalizeJurisdiction maps unknown jurisdictions to JurisdictionOther.
func NormalizeJurisdiction(jurisdiction string) Jurisdiction {
	if _, ok := jurisdictionTemplates[Jurisdiction(jurisdiction)]; ok {
		return Jurisdiction(jurisdiction)
	}
	return JurisdictionOther
}

func RoleSentence(role string) string {
	return roleTemplates[NormalizeRole(role)]
}

func JurisdictionSentence(jurisdiction string) string {
	return jurisdictionTemplates[NormalizeJurisdiction(jurisdiction)]
}

// BuildTemplate composes the context-aware template: optional history line,
// then the role sentence, then the jurisdiction sentence.
func BuildTemplate(history []string, role, jurisdiction string) string {
	parts := make([]string, 0, 3)
	if len(history) > 0 {
		parts = append(parts, "Conversation so far: "+strings.Join(history, " | "))
	}

	parts = append(parts, RoleSentence(role))
	parts = append(parts, JurisdictionSentence(jurisdiction))

	return strings.Join(parts, " ")
}
