package domain

// Career list limits. The list accepts at most MaxCareers distinct entries
// and generation requires at least MinCareers.
const (
	MaxCareers = 4
	MinCareers = 1
)

// SurpriseCount is how many suggestions the "surprise me" action picks.
const SurpriseCount = 3

// SuggestedCareers is the fixed pool backing the "surprise me" action,
// a mix of realistic and deliberately fictional occupations.
var SuggestedCareers = []string{
	// Real careers
	"Astronaut",
	"Chef",
	"Detective",
	"Gardener",
	"CEO",
	"Artist",
	"Doctor",
	"Pilot",
	"Firefighter",
	"Scientist",
	"Architect",
	"Musician",
	"Professional Athlete",
	"Marine Biologist",
	"Archaeologist",
	"Software Engineer",
	"Veterinarian",
	"Fashion Designer",
	"Park Ranger",
	"Chemical Engineer",
	"Product Manager",

	// Fictional / satirical careers
	"Superhero",
	"Wizard",
	"Time Traveler",
	"Dragon Tamer",
	"Space Ranger",
	"Cat Whisperer",
	"Ghost Hunter",
	"Ninja",
	"Pirate",
	"Zombie Apocalypse Survivor",
	"Stunt Artist",
}
