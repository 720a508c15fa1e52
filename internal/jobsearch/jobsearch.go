// Package jobsearch builds curated job board links and search tips for a
// target role. Purely local; no network calls.
package jobsearch

import (
	"net/url"
	"strings"
)

// Link is one job board search URL.
type Link struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Links returns search URLs for the major job platforms. The top skills, if
// provided, are unused by boards that only take a role query but reserved
// for boards supporting keyword search.
func Links(targetRole string, skills []string) []Link {
	role := strings.TrimSpace(targetRole)
	roleEncoded := url.QueryEscape(role)

	keywords := roleEncoded
	if len(skills) > 0 {
		top := skills
		if len(top) > 3 {
			top = top[:3]
		}
		keywords = url.QueryEscape(role + " " + strings.Join(top, " "))
	}

	slug := strings.ToLower(strings.ReplaceAll(role, " ", "-"))

	return []Link{
		{
			Name:  "LinkedIn Jobs",
			URL:   "https://www.linkedin.com/jobs/search/?keywords=" + roleEncoded,
			Icon:  "linkedin",
			Color: "blue",
		},
		{
			Name:  "Indeed",
			URL:   "https://www.indeed.com/jobs?q=" + keywords,
			Icon:  "briefcase",
			Color: "indigo",
		},
		{
			Name:  "Google Jobs",
			URL:   "https://www.google.com/search?q=" + roleEncoded + "+jobs&ibp=htl;jobs",
			Icon:  "search",
			Color: "red",
		},
		{
			Name:  "Glassdoor",
			URL:   "https://www.glassdoor.com/Job/jobs.htm?sc.keyword=" + roleEncoded,
			Icon:  "door",
			Color: "green",
		},
		{
			Name:  "Naukri",
			URL:   "https://www.naukri.com/" + slug + "-jobs",
			Icon:  "briefcase",
			Color: "blue",
		},
	}
}

var roleTips = map[string][]string{
	"Frontend Developer": {
		"Highlight React/Vue/Angular projects in your portfolio",
		"Include a GitHub profile with active contributions",
		"Mention responsive design and accessibility experience",
	},
	"Backend Developer": {
		"Showcase API design and database experience",
		"Mention scalability and performance optimizations",
		"Include cloud platform experience (AWS/GCP/Azure)",
	},
	"Data Analyst": {
		"Highlight SQL and visualization tool proficiency",
		"Include data storytelling examples",
		"Mention the business impact of your analyses",
	},
	"Full Stack Developer": {
		"Show end-to-end project experience",
		"Highlight both frontend and backend technologies",
		"Include deployment and DevOps experience",
	},
	"Machine Learning Engineer": {
		"Showcase ML projects with measurable results",
		"Mention production ML system experience",
		"Include research papers or Kaggle rankings",
	},
	"DevOps Engineer": {
		"Highlight CI/CD pipeline experience",
		"Mention infrastructure-as-code tools",
		"Include monitoring and incident response experience",
	},
	"Product Manager": {
		"Showcase product launches and metrics",
		"Highlight cross-functional collaboration",
		"Include user research experience",
	},
	"UX Designer": {
		"Include a portfolio with case studies",
		"Show your user research methodology",
		"Mention design system experience",
	},
}

var defaultTips = []string{
	"Tailor your resume for each application",
	"Research the company before applying",
	"Follow up after submitting your application",
}

// Tips returns role-specific search tips, or generic ones for unknown
// roles. Backend Engineer shares the Backend Developer tips.
func Tips(targetRole string) []string {
	role := strings.TrimSpace(targetRole)
	if strings.EqualFold(role, "Backend Engineer") {
		role = "Backend Developer"
	}
	for name, tips := range roleTips {
		if strings.EqualFold(name, role) {
			return tips
		}
	}
	return defaultTips
}
