// Package skills extracts known skill names from free text. It is the
// default SkillExtractor: a flat dictionary lookup, no model involved.
package skills

import (
	"sort"
	"strings"
)

// knownSkills is the flat tech-skill dictionary matched against resume and
// JD text. Multi-word entries match as substrings of the lowercased text.
var knownSkills = []string{
	"python", "java", "javascript", "typescript", "golang", "go", "c++", "c#",
	"react", "vue", "angular", "next.js", "node.js", "express", "django", "flask",
	"fastapi", "spring", "spring boot", "hibernate", "laravel", "php",
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "kafka",
	"docker", "kubernetes", "aws", "azure", "gcp", "terraform", "jenkins", "ci/cd",
	"machine learning", "deep learning", "nlp", "computer vision", "pytorch", "tensorflow",
	"pandas", "numpy", "scikit-learn", "transformers", "hugging face",
	"rest api", "graphql", "grpc", "microservices", "system design",
	"data structures", "algorithms", "oop", "devops", "agile", "scrum",
	"power bi", "tableau", "data analysis", "statistics",
	"android", "kotlin", "ios", "swift", "react native", "flutter",
	"cybersecurity", "ethical hacking", "network security",
	"html", "css", "bootstrap", "tailwind",
	"git", "linux", "bash", "shell scripting",
	"socket.io", "websocket", "celery",
	"embedded c", "rtos", "arduino", "raspberry pi", "iot", "vlsi", "verilog", "matlab",
}

type DictionaryExtractor struct{}

func NewDictionaryExtractor() DictionaryExtractor {
	return DictionaryExtractor{}
}

// Extract returns the deduplicated, title-cased skills found in text, sorted
// for deterministic output.
func (DictionaryExtractor) Extract(text string) []string {
	lower := strings.ToLower(text)
	found := map[string]struct{}{}
	for _, skill := range knownSkills {
		if strings.Contains(lower, skill) {
			found[titleCase(skill)] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Merge unions newly extracted skills into the existing set, preserving the
// existing order and dropping case-insensitive duplicates.
func Merge(existing, extracted []string) []string {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(extracted))
	for _, s := range existing {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, s)
	}
	for _, s := range extracted {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, s)
	}
	return merged
}
