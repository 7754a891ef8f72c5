package breaks

import (
	"strings"
	"text/template"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

const SystemInstruction = "You are a helpful study and break recommendation assistant."

var (
	DefaultBenefits  = []string{"Improved focus", "Better retention", "Reduced fatigue"}
	DefaultStudyTips = []string{"Take regular breaks", "Stay hydrated", "Maintain good posture"}
)

var recommendationPrompt = template.Must(template.New("recommendation").Option("missingkey=zero").Parse(
	`Based on the following user profile, suggest a personalized break activity and study interval:

Name: {{.Name}}
Study Type: {{.StudyInterval}}
Time of Day: {{.TimeOfDay}}
Deadline Pressure: {{.DeadlinePressure}}
Personal Preferences: {{.Preferences}}
Screen Usage: {{.ScreenUsage}}
Activity Level: {{.ActivityLevel}}
Energy Level: {{.EnergyLevel}}/10
Preferred Break Duration: {{.PreferredBreakDuration}} minutes

Please provide:
1. An appropriate study interval duration
2. A specific break activity that:
   - Aligns with their preferences
   - Considers their screen usage
   - Matches their activity level
   - Is appropriate for their energy level
3. Study tips for maintaining focus
`))

type promptInput struct {
	Name                   string
	StudyInterval          string
	TimeOfDay              string
	DeadlinePressure       string
	Preferences            string
	ScreenUsage            string
	ActivityLevel          string
	EnergyLevel            int
	PreferredBreakDuration int
}

// BuildPrompt renders the user prompt for a recommendation request.
func BuildPrompt(p *types.Profile) (string, error) {
	in := promptInput{
		Name:                   p.Name,
		StudyInterval:          string(p.StudyInterval),
		TimeOfDay:              string(p.TimeOfDay),
		DeadlinePressure:       string(p.DeadlinePressure),
		Preferences:            strings.Join(p.PersonalPreferences, ", "),
		ScreenUsage:            "No",
		ActivityLevel:          string(p.ActivityLevel),
		EnergyLevel:            p.EnergyLevel,
		PreferredBreakDuration: p.PreferredBreakDuration,
	}
	if p.ScreenUsage {
		in.ScreenUsage = "Yes"
	}
	var b strings.Builder
	if err := recommendationPrompt.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FirstLine returns the first line of generated text, trimmed.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
