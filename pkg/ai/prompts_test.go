package ai

import (
	"strings"
	"testing"
)

func TestIsHumanSubject(t *testing.T) {
	if !IsHumanSubject("Human") {
		t.Fatalf("Human must take the human branch")
	}
	for _, s := range []string{"Golden Retriever", "Siamese Cat", "human", ""} {
		if IsHumanSubject(s) {
			t.Fatalf("%q must take the animal branch", s)
		}
	}
}

func TestClassifyPromptShape(t *testing.T) {
	p := ClassifyPrompt()
	if !strings.Contains(p, `return exactly "Human"`) {
		t.Fatalf("classification prompt missing human fallback instruction:\n%s", p)
	}
	if !strings.Contains(p, "ONLY the subject string") {
		t.Fatalf("classification prompt missing output constraint:\n%s", p)
	}
}

func TestImagePromptHuman(t *testing.T) {
	p := ImagePrompt("Astronaut", "Human")
	if !strings.Contains(p, "photorealistic portrait of a person") {
		t.Fatalf("human prompt wrong:\n%s", p)
	}
	if !strings.Contains(p, "reimagined as a Astronaut") {
		t.Fatalf("career not in prompt:\n%s", p)
	}
	if strings.Contains(p, "fur") {
		t.Fatalf("human prompt must not mention fur:\n%s", p)
	}
}

func TestImagePromptAnimal(t *testing.T) {
	p := ImagePrompt("CEO", "Golden Retriever")
	if !strings.Contains(p, "Golden Retriever dressed as a CEO") {
		t.Fatalf("animal prompt wrong:\n%s", p)
	}
	if !strings.Contains(p, "Match the fur color and markings") {
		t.Fatalf("likeness instruction missing:\n%s", p)
	}
}

func TestPlanPromptBranches(t *testing.T) {
	human := PlanPrompt("Wizard", "Human")
	if !strings.Contains(human, "FICTIONAL") || !strings.Contains(human, "REAL") {
		t.Fatalf("human plan prompt missing real/fictional policy:\n%s", human)
	}
	if strings.Contains(human, "satirical, funny, and tailored") {
		t.Fatalf("human plan prompt leaked the animal policy:\n%s", human)
	}

	animal := PlanPrompt("CEO", "Siamese Cat")
	if !strings.Contains(animal, "MUST be satirical") {
		t.Fatalf("animal plan prompt missing satire requirement:\n%s", animal)
	}
	if !strings.Contains(animal, "Siamese Cat") {
		t.Fatalf("species missing from plan prompt:\n%s", animal)
	}
	if !strings.Contains(animal, "8-week career transition plan") {
		t.Fatalf("roadmap framing missing:\n%s", animal)
	}
}
