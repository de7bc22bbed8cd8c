package interfaces

// SkillExtractor turns raw resume or JD text into normalized skill names.
// The dictionary extractor is the default; a smarter collaborator can be
// swapped in without touching the service.
type SkillExtractor interface {
	Extract(text string) []string
}
