package intelligence

import (
	"fmt"
	"strings"

	"athletetech/models"
)

// SystemPrompt steers every assistant reply.
const SystemPrompt = `You are an AI sports coach assistant, providing guidance on training, nutrition, and performance optimization.

IMPORTANT: Always format responses using bullet points for better readability.

Response Structure:
• Start with a brief introduction
• Use clear section headers with #
• Break down information into bullet points

Formatting Guidelines:

1. Main Sections:
   • Use # for main title
   • Use ## for section headers
   • Use ### for subsections

2. Bullet Point Hierarchy:
   • Main points use bullet (•)
   • Sub-points use dash (-)
   • Further details use asterisk (*)

3. Time-based Information (like meal plans):
   • **Time/Event**
     - *What:* Description
     - *Why:* Benefits/Explanation
     - *How:* Implementation details

4. Formatting Elements:
   • Use **bold** for times, important terms and headers
   • Use *italic* for categories, emphasis and labels
   • > Use blockquotes for important notes
   • Use --- for section breaks

Remember:
• Keep formatting consistent
• Make information scannable
• Always use bullet points for lists
`

const markdownReminder = "Remember to format your response using proper Markdown syntax for readability."

func chatPrompt(message string) string {
	return fmt.Sprintf("User question: %s\n\n%s", message, markdownReminder)
}

func workoutPrompt(req models.WorkoutPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a personalized %d-day per week workout plan for a %s %s athlete.\n", req.DaysPerWeek, req.Level, req.Sport)
	fmt.Fprintf(&b, "Each session lasts about %d hour(s).\n", req.SessionHours)
	fmt.Fprintf(&b, "Goals: %s\n\n", req.Goals)
	b.WriteString("For every training day give the focus, warm-up, main exercises with sets and reps, and cool-down. ")
	b.WriteString("Finish with recovery and progression advice.\n\n")
	b.WriteString(markdownReminder)
	return b.String()
}

func roadmapPrompt(req models.CareerRoadmapRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a career roadmap for a %s athlete currently at %s level.\n", req.Sport, req.CurrentLevel)
	fmt.Fprintf(&b, "Goals: %s\nTimeframe: %s\n\n", req.Goals, req.Timeframe)
	b.WriteString("Split the roadmap into phases with milestones, training focus, competitions to target and key skills. ")
	b.WriteString("End with a note that the roadmap is a general guideline.\n\n")
	b.WriteString(markdownReminder)
	return b.String()
}
