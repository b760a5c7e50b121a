package synth

// Word corpora. Lowercase lorem-style words keep generated text looking
// like filler rather than accidental real content.
var words = []string{
	"lorem", "ipsum", "dolor", "amet", "consectetur", "adipiscing", "elit",
	"vestibulum", "tincidunt", "sapien", "quis", "ultricies", "porta",
	"nulla", "facilisi", "curabitur", "pretium", "velit", "mattis", "tellus",
	"commodo", "maximus", "donec", "fermentum", "ligula", "aliquam", "augue",
	"luctus", "vitae", "nibh", "libero", "feugiat", "ornare", "magna",
	"sodales", "cursus", "integer", "euismod", "lacinia", "turpis", "varius",
	"rutrum", "dictum", "posuere", "sagittis", "blandit", "viverra", "morbi",
	"laoreet", "gravida", "suscipit", "faucibus", "aliquet", "molestie",
	"venenatis", "rhoncus", "pharetra", "convallis", "vulputate", "semper",
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
	"Lisa", "Nancy", "Matthew", "Anthony", "Sandra", "Mark", "Ashley",
	"Emily", "Paul", "Andrew", "Kimberly", "Donna", "Joshua", "Michelle",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
}

var orgSuffixes = []string{"Inc", "LLC", "Group", "Labs", "Systems", "Partners"}

var tlds = []string{".com", ".net", ".org", ".io", ".dev"}
