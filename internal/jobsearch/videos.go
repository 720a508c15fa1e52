package jobsearch

import (
	"net/url"
	"strings"
)

// Video is one recommended learning video.
type Video struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Channel string `json:"channel"`
	Curated bool   `json:"is_curated"`
}

// VideoRecommendation groups the videos for one roadmap skill.
type VideoRecommendation struct {
	Skill     string  `json:"skill"`
	Videos    []Video `json:"videos"`
	SearchURL string  `json:"search_url"`
}

// Channel is a curated learning channel for a target role.
type Channel struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// curatedVideo is a known-good video in the local bank.
type curatedVideo struct {
	title   string
	id      string
	channel string
}

// skillVideos maps lowercase skill names to hand-picked videos. Keys are
// matched case-insensitively and by substring in either direction.
var skillVideos = map[string][]curatedVideo{
	// Frontend
	"react": {
		{"React Tutorial for Beginners", "SqcY0GlETPk", "Programming with Mosh"},
		{"React Full Course 2024", "CgkZ7MvWUAA", "freeCodeCamp"},
	},
	"javascript": {
		{"JavaScript Tutorial Full Course", "EfAl9bwzVZk", "Bro Code"},
		{"JavaScript Crash Course", "hdI2bqOjy3c", "Traversy Media"},
	},
	"html": {
		{"HTML Full Course", "kUMe1FH4CHE", "freeCodeCamp"},
		{"HTML Tutorial for Beginners", "qz0aGYrrlhU", "Programming with Mosh"},
	},
	"css": {
		{"CSS Tutorial Full Course", "n4R2E7O-Ngo", "Bro Code"},
		{"CSS Crash Course", "yfoY53QXEnI", "Traversy Media"},
	},
	"typescript": {
		{"TypeScript Full Course", "30LWjhZzg50", "freeCodeCamp"},
		{"TypeScript Tutorial", "BCg4U1FzODs", "Traversy Media"},
	},
	"vue": {
		{"Vue.js Course for Beginners", "FXpIoQ_rT_c", "freeCodeCamp"},
		{"Vue 3 Crash Course", "ZqgiuPt5QZo", "Traversy Media"},
	},
	"responsive design": {
		{"Responsive Web Design", "srvUrASNj0s", "freeCodeCamp"},
	},

	// Data
	"python": {
		{"Python Tutorial for Beginners", "_uQrJ0TkZlc", "Programming with Mosh"},
		{"Python Full Course", "XKHEtdqhLK8", "Bro Code"},
	},
	"sql": {
		{"SQL Tutorial Full Course", "HXV3zeQKqGY", "freeCodeCamp"},
		{"SQL for Beginners", "7S_tz1z_5bA", "Programming with Mosh"},
	},
	"excel": {
		{"Excel Tutorial for Beginners", "Vl0H-qTclOg", "Kevin Stratvert"},
		{"Excel Full Course", "27dxBp0EgCc", "Simplilearn"},
	},
	"tableau": {
		{"Tableau Full Course", "aHaOIvR00So", "Simplilearn"},
		{"Tableau Tutorial for Beginners", "jEgVto5QME8", "freeCodeCamp"},
	},
	"power bi": {
		{"Power BI Full Course", "3u7MQz1EyPY", "Simplilearn"},
		{"Power BI Tutorial", "AGrl-H87pRU", "Kevin Stratvert"},
	},
	"pandas": {
		{"Pandas Tutorial", "vmEHCJofslg", "Keith Galli"},
		{"Pandas Full Course", "PcvsOaixUh8", "freeCodeCamp"},
	},
	"statistics": {
		{"Statistics Full Course", "xxpc-HPKN28", "freeCodeCamp"},
		{"Statistics Fundamentals", "qBigTkBLU6g", "StatQuest"},
	},
	"data visualization": {
		{"Data Visualization with Python", "r-uOLxNrNk8", "freeCodeCamp"},
	},

	// Backend / DevOps
	"node.js": {
		{"Node.js Tutorial", "TlB_eWDSMt4", "Programming with Mosh"},
		{"Node.js Full Course", "Oe421EPjeBE", "freeCodeCamp"},
	},
	"docker": {
		{"Docker Tutorial for Beginners", "pTFZFxd4hOI", "Programming with Mosh"},
		{"Docker Full Course", "fqMOX6JJhGo", "freeCodeCamp"},
	},
	"aws": {
		{"AWS Tutorial for Beginners", "k1RI5locZE4", "freeCodeCamp"},
		{"AWS Certified Cloud Practitioner", "SOTamWNgDKc", "freeCodeCamp"},
	},
	"git": {
		{"Git and GitHub for Beginners", "RGOj5yH7evk", "freeCodeCamp"},
		{"Git Tutorial", "8JJ101D3knE", "Programming with Mosh"},
	},
	"api": {
		{"APIs for Beginners", "GZvSYJDk-us", "freeCodeCamp"},
		{"REST API Tutorial", "lsMQRaeKNDk", "freeCodeCamp"},
	},
	"database design": {
		{"Database Design Course", "ztHopE5Wnpc", "freeCodeCamp"},
	},

	// ML / AI
	"machine learning": {
		{"Machine Learning Course", "NWONeJKn6kc", "freeCodeCamp"},
		{"Machine Learning Tutorial", "7eh4d6sabA0", "Programming with Mosh"},
	},
	"tensorflow": {
		{"TensorFlow 2.0 Complete Course", "tPYj3fFJGjk", "freeCodeCamp"},
	},
	"pytorch": {
		{"PyTorch Full Course", "V_xro1bcAuA", "freeCodeCamp"},
	},

	// Soft skills
	"agile": {
		{"Agile Project Management", "Z9QbYZh1YXY", "Google Career Certificates"},
	},
	"communication": {
		{"Communication Skills", "HAnw168huqA", "TED"},
	},
	"leadership": {
		{"Leadership Skills", "18UVXW-x2_8", "Simon Sinek"},
	},
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func videoSearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

// matchVideos finds bank entries for a skill: exact name first, then a
// substring match in either direction ("REST API design" matches "api").
func matchVideos(skill string) []curatedVideo {
	lower := strings.ToLower(strings.TrimSpace(skill))
	if vids, ok := skillVideos[lower]; ok {
		return vids
	}
	for known, vids := range skillVideos {
		if strings.Contains(lower, known) || strings.Contains(known, lower) {
			return vids
		}
	}
	return nil
}

// maxVideosPerSkill caps curated entries so one skill cannot dominate the
// results page.
const maxVideosPerSkill = 2

// Videos returns one recommendation per roadmap skill: curated videos when
// the bank knows the skill, a search link otherwise. Purely local, like
// Links and Tips.
func Videos(skills []string) []VideoRecommendation {
	recs := make([]VideoRecommendation, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}

		rec := VideoRecommendation{
			Skill:     skill,
			SearchURL: videoSearchURL(skill + " tutorial"),
		}
		if curated := matchVideos(skill); len(curated) > 0 {
			if len(curated) > maxVideosPerSkill {
				curated = curated[:maxVideosPerSkill]
			}
			for _, v := range curated {
				rec.Videos = append(rec.Videos, Video{
					Title:   v.title,
					URL:     watchURL(v.id),
					Channel: v.channel,
					Curated: true,
				})
			}
		} else {
			rec.Videos = []Video{{
				Title:   "Search: " + skill + " tutorial",
				URL:     videoSearchURL(skill + " tutorial for beginners"),
				Channel: "YouTube Search",
				Curated: false,
			}}
		}
		recs = append(recs, rec)
	}
	return recs
}

var roleChannels = map[string][]Channel{
	"Frontend Developer": {
		{"Traversy Media", "https://www.youtube.com/@TraversyMedia"},
		{"Web Dev Simplified", "https://www.youtube.com/@WebDevSimplified"},
		{"Fireship", "https://www.youtube.com/@Fireship"},
	},
	"Data Analyst": {
		{"Alex The Analyst", "https://www.youtube.com/@AlexTheAnalyst"},
		{"StatQuest", "https://www.youtube.com/@statquest"},
		{"freeCodeCamp", "https://www.youtube.com/@freecodecamp"},
	},
	"Backend Developer": {
		{"Traversy Media", "https://www.youtube.com/@TraversyMedia"},
		{"TechWorld with Nana", "https://www.youtube.com/@TechWorldwithNana"},
		{"Fireship", "https://www.youtube.com/@Fireship"},
	},
	"Full Stack Developer": {
		{"Traversy Media", "https://www.youtube.com/@TraversyMedia"},
		{"The Net Ninja", "https://www.youtube.com/@NetNinja"},
		{"Fireship", "https://www.youtube.com/@Fireship"},
	},
	"Machine Learning Engineer": {
		{"3Blue1Brown", "https://www.youtube.com/@3blue1brown"},
		{"Sentdex", "https://www.youtube.com/@sentdex"},
		{"StatQuest", "https://www.youtube.com/@statquest"},
	},
	"DevOps Engineer": {
		{"TechWorld with Nana", "https://www.youtube.com/@TechWorldwithNana"},
		{"NetworkChuck", "https://www.youtube.com/@NetworkChuck"},
		{"KodeKloud", "https://www.youtube.com/@KodeKloud"},
	},
	"Product Manager": {
		{"Product School", "https://www.youtube.com/@ProductSchoolSanFrancisco"},
		{"Lenny's Podcast", "https://www.youtube.com/@LennysPodcast"},
		{"The Futur", "https://www.youtube.com/@thefutur"},
	},
	"UX Designer": {
		{"The Futur", "https://www.youtube.com/@thefutur"},
		{"DesignCourse", "https://www.youtube.com/@DesignCourse"},
		{"Flux Academy", "https://www.youtube.com/@FluxAcademy"},
	},
}

// Channels returns curated learning channels for a role. Backend Engineer
// shares the Backend Developer set; unknown roles get the frontend set,
// which skews general-purpose.
func Channels(targetRole string) []Channel {
	role := strings.TrimSpace(targetRole)
	if strings.EqualFold(role, "Backend Engineer") {
		role = "Backend Developer"
	}
	for name, channels := range roleChannels {
		if strings.EqualFold(name, role) {
			return channels
		}
	}
	return roleChannels["Frontend Developer"]
}
