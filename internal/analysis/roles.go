package analysis

import "strings"

// RoleProfile is the known requirement profile for a target role. It feeds
// the role-fit prompt and the offline demo analysis.
type RoleProfile struct {
	Name       string
	Core       []string
	Supporting []string
}

// roleProfiles is the built-in requirement catalog.
var roleProfiles = map[string]RoleProfile{
	"Frontend Developer": {
		Name:       "Frontend Developer",
		Core:       []string{"react", "javascript", "html", "css", "typescript", "vue.js"},
		Supporting: []string{"git", "testing", "responsive design", "api integration"},
	},
	"Data Analyst": {
		Name:       "Data Analyst",
		Core:       []string{"sql", "python", "excel", "data visualization", "statistics"},
		Supporting: []string{"tableau", "power bi", "pandas", "machine learning basics"},
	},
	"Backend Developer": {
		Name:       "Backend Developer",
		Core:       []string{"python", "java", "sql", "api", "database design"},
		Supporting: []string{"docker", "aws", "microservices", "security"},
	},
	"Backend Engineer": {
		Name:       "Backend Engineer",
		Core:       []string{"python", "java", "sql", "api", "database design"},
		Supporting: []string{"docker", "aws", "microservices", "security"},
	},
	"Full Stack Developer": {
		Name:       "Full Stack Developer",
		Core:       []string{"javascript", "react", "node.js", "sql", "api"},
		Supporting: []string{"docker", "git", "cloud services", "devops"},
	},
	"Machine Learning Engineer": {
		Name:       "Machine Learning Engineer",
		Core:       []string{"python", "machine learning", "tensorflow", "pandas"},
		Supporting: []string{"docker", "aws", "mlops", "statistics"},
	},
	"DevOps Engineer": {
		Name:       "DevOps Engineer",
		Core:       []string{"docker", "kubernetes", "aws", "ci/cd", "linux"},
		Supporting: []string{"python", "terraform", "monitoring", "security"},
	},
	"Product Manager": {
		Name:       "Product Manager",
		Core:       []string{"product strategy", "user research", "roadmapping", "agile"},
		Supporting: []string{"sql", "analytics", "communication", "leadership"},
	},
	"UX Designer": {
		Name:       "UX Designer",
		Core:       []string{"figma", "user research", "wireframing", "prototyping"},
		Supporting: []string{"html", "css", "usability testing", "design systems"},
	},
}

// ProfileFor returns the requirement profile for the named role. Unknown
// roles fall back to a generic software profile so the pipeline always has
// something concrete to compare against.
func ProfileFor(role string) RoleProfile {
	if p, ok := roleProfiles[role]; ok {
		return p
	}
	for name, p := range roleProfiles {
		if strings.EqualFold(name, strings.TrimSpace(role)) {
			return p
		}
	}
	return RoleProfile{
		Name:       role,
		Core:       []string{"programming fundamentals", "problem solving", "version control"},
		Supporting: []string{"testing", "communication", "agile"},
	}
}

// KnownRoles lists the catalog roles in a stable order for UI selects.
func KnownRoles() []string {
	return []string{
		"Frontend Developer",
		"Backend Developer",
		"Backend Engineer",
		"Full Stack Developer",
		"Data Analyst",
		"Machine Learning Engineer",
		"DevOps Engineer",
		"Product Manager",
		"UX Designer",
	}
}
