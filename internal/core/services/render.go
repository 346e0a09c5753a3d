package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// profileSummary is the render-ready digest of one profile.
type profileSummary struct {
	highlights []string
	fields     [][2]string
}

// BuildProfileHTML renders a minimal standalone HTML document
// describing the profile: a highlights list plus a field table.
func BuildProfileHTML(profile domain.Profile) string {
	summary := summarizeProfile(profile)
	title := profile.Type().Label() + " profile summary"

	var items []string
	if len(summary.highlights) == 0 {
		items = append(items, "<li>No highlights recorded yet.</li>")
	} else {
		for _, item := range summary.highlights {
			items = append(items, "<li>"+htmlEscape(item)+"</li>")
		}
	}
	var rows []string
	if len(summary.fields) == 0 {
		rows = append(rows, `<tr><td colspan="2">No fields recorded.</td></tr>`)
	} else {
		for _, field := range summary.fields {
			rows = append(rows, fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>", htmlEscape(field[0]), htmlEscape(field[1])))
		}
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n  <head>\n    <meta charset=\"utf-8\">\n")
	b.WriteString("    <title>" + htmlEscape(title) + "</title>\n")
	b.WriteString(`    <style>
      body { font-family: Arial, sans-serif; margin: 1.5rem; }
      h1 { margin-bottom: 0; }
      .meta { color: #555; margin-bottom: 1rem; }
      ul { padding-left: 1.5rem; }
      table { border-collapse: collapse; width: 100%; }
      th, td { text-align: left; vertical-align: top; padding: 0.4rem; border-bottom: 1px solid #eee; }
      th { width: 30%; color: #444; }
    </style>
`)
	b.WriteString("  </head>\n  <body>\n")
	b.WriteString("    <h1>" + htmlEscape(title) + "</h1>\n")
	b.WriteString("    <div class=\"meta\">Last updated: " + profile.Metadata().LastUpdated.Format(time.RFC3339) + "</div>\n")
	b.WriteString("    <h2>Highlights</h2>\n    <ul>\n      " + strings.Join(items, "\n      ") + "\n    </ul>\n")
	b.WriteString("    <h2>Details</h2>\n    <table>\n      " + strings.Join(rows, "\n      ") + "\n    </table>\n")
	b.WriteString("  </body>\n</html>\n")
	return b.String()
}

func summarizeProfile(profile domain.Profile) profileSummary {
	switch p := profile.(type) {
	case *domain.UserProfile:
		return summarizeUser(p)
	case *domain.WorkProfile:
		return summarizeWork(p)
	case *domain.WritingProfile:
		return summarizeWriting(p)
	case *domain.KnowledgeProfile:
		return summarizeKnowledge(p)
	}
	return profileSummary{}
}

func summarizeUser(p *domain.UserProfile) profileSummary {
	var s profileSummary
	if len(p.Summary) > 0 {
		s.highlights = append(s.highlights, p.Summary...)
	} else {
		if p.Fields.Name != "" {
			s.highlights = append(s.highlights, "Primary contact: "+p.Fields.Name)
		}
		if len(p.Fields.CommunicationStyle) > 0 {
			s.highlights = append(s.highlights, "Prefers "+joinList(p.Fields.CommunicationStyle)+" communication")
		}
	}
	s.fields = append(s.fields,
		[2]string{"Name", orUnset(p.Fields.Name)},
		[2]string{"Affiliations", joinList(p.Fields.Affiliations)},
		[2]string{"Communication Style", joinList(p.Fields.CommunicationStyle)},
		[2]string{"Availability", orUnset(p.Fields.Availability)},
	)
	return s
}

func summarizeWork(p *domain.WorkProfile) profileSummary {
	var s profileSummary
	if p.Fields.FocusStatement != "" {
		s.highlights = append(s.highlights, "Primary focus: "+p.Fields.FocusStatement)
	} else {
		s.highlights = append(s.highlights, "No focus statement recorded yet.")
	}
	if len(p.Fields.Milestones) > 0 {
		s.highlights = append(s.highlights, fmt.Sprintf("%d milestones tracked", len(p.Fields.Milestones)))
	}

	projects := make([]string, len(p.Fields.ActiveProjects))
	for i, project := range p.Fields.ActiveProjects {
		status := project.Status
		if status == "" {
			status = "status: n/a"
		}
		projects[i] = fmt.Sprintf("%s (%s)", project.Name, status)
	}
	s.fields = append(s.fields,
		[2]string{"Focus Statement", orUnset(p.Fields.FocusStatement)},
		[2]string{"Active Projects", strings.Join(projects, "; ")},
		[2]string{"Preferred Tools", joinList(p.Fields.PreferredTools)},
		[2]string{"Risks", joinList(p.Fields.Risks)},
	)
	return s
}

func summarizeWriting(p *domain.WritingProfile) profileSummary {
	var s profileSummary
	if len(p.Summary) > 0 {
		s.highlights = append(s.highlights, p.Summary...)
	} else {
		if len(p.Fields.ToneDescriptors) > 0 {
			s.highlights = append(s.highlights, "Tone: "+joinList(p.Fields.ToneDescriptors))
		}
		if len(p.Fields.StructurePreferences) > 0 {
			s.highlights = append(s.highlights, "Structure preferences: "+joinList(p.Fields.StructurePreferences))
		}
	}

	examples := make([]string, len(p.Fields.StyleExamples))
	for i, example := range p.Fields.StyleExamples {
		citation := example.Citation
		if citation == "" {
			citation = "n/a"
		}
		examples[i] = fmt.Sprintf("%s (%s)", example.Source, citation)
	}
	s.fields = append(s.fields,
		[2]string{"Tone Descriptors", joinList(p.Fields.ToneDescriptors)},
		[2]string{"Structure Preferences", joinList(p.Fields.StructurePreferences)},
		[2]string{"Style Examples", strings.Join(examples, "; ")},
	)
	return s
}

func summarizeKnowledge(p *domain.KnowledgeProfile) profileSummary {
	var s profileSummary
	if len(p.Summary) > 0 {
		s.highlights = append(s.highlights, p.Summary...)
	} else {
		var strengths, weaknesses int
		for _, entry := range p.Entries {
			if len(entry.WeaknessFlags) == 0 {
				strengths++
			} else {
				weaknesses++
			}
		}
		s.highlights = append(s.highlights, fmt.Sprintf("%d strengths, %d weaknesses recorded", strengths, weaknesses))
	}
	var flagged int
	for _, entry := range p.Entries {
		if len(entry.WeaknessFlags) > 0 {
			flagged++
		}
	}
	s.fields = append(s.fields,
		[2]string{"Entries", fmt.Sprintf("%d", len(p.Entries))},
		[2]string{"Flagged Weaknesses", fmt.Sprintf("%d", flagged)},
	)
	return s
}

func joinList(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}

func orUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unset"
	}
	return value
}

func htmlEscape(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	return strings.ReplaceAll(value, ">", "&gt;")
}
