package ai

import (
	"fmt"

	"career-reimagined/internal/domain"
)

// Prompt policy for the three Gemini operations. The human/non-human branch
// is the product's personality feature: non-human subjects get the satirical
// treatment everywhere. Keep the discriminator in one place so the policy can
// be tested without the network.

// IsHumanSubject reports which prompt variant applies for a descriptor.
func IsHumanSubject(subject string) bool {
	return subject == domain.SubjectHuman
}

const classifyPrompt = `Analyze this image. Identify the main subject.
If it is a human, return exactly "Human".
If it is an animal, return the specific species and breed/color if clear (e.g., "Golden Retriever", "Siamese Cat", "Hamster").
Return ONLY the subject string.`

// ClassifyPrompt is the instruction sent alongside the uploaded photo.
func ClassifyPrompt() string { return classifyPrompt }

// ImagePrompt builds the portrait-generation prompt. Wording is tuned to
// request likeness without tripping strict identity safety filters.
func ImagePrompt(career, subject string) string {
	if IsHumanSubject(subject) {
		return fmt.Sprintf(`Generate a photorealistic portrait of a person resembling the subject in the input image, reimagined as a %[1]s.
The person should be wearing professional %[1]s attire and placed in a relevant environment.
High quality, cinematic lighting, 8k resolution.`, career)
	}
	return fmt.Sprintf(`Create a photorealistic, adorable, and funny portrait of a %[2]s dressed as a %[1]s.
The animal should be wearing the professional attire of a %[1]s (e.g. uniform, suit, gear).
Match the fur color and markings of the original animal.
The animal should look like they are seriously doing the job.
High quality, cinematic lighting.`, career, subject)
}

// PlanPrompt builds the transition-plan prompt. For animal subjects the whole
// plan must be satirical and species-specific; for humans the model decides
// realism per career and sets isFictional accordingly.
func PlanPrompt(career, subject string) string {
	var policy string
	if IsHumanSubject(subject) {
		policy = `If the career is REAL (e.g., Accountant, Chef): Provide actionable advice, real thought leaders, and real companies.
If the career is FICTIONAL (e.g., Wizard): Write in a professional but satirical tone.`
	} else {
		policy = fmt.Sprintf(`IMPORTANT: Since the subject is an animal (%s), the entire plan MUST be satirical, funny, and tailored to that animal's behaviors.
- Skills should relate to the animal (e.g., for a Cat CEO: "Knocking mugs off tables with authority").
- "Thought Leaders" should be famous animals or funny animal puns.
- "Target Companies" should be animal-related puns (e.g., "Purr-waterhouseCoopers").
- The tone should be professional yet absurdly specific to the animal species.`, subject)
	}

	return fmt.Sprintf(`Create an 8-week career transition plan for a %[2]s becoming a "%[1]s".

CONTEXT: The subject is a %[2]s.
%[3]s

Return the response in JSON format according to the schema.`, career, subject, policy)
}
