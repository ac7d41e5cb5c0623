package catalog

import "folio/internal/access"

// Site is the public owner card rendered on the landing page and fed
// to the assistant's system instruction.
var Site = SiteInfo{
	Name:     "Redwan",
	FullName: "Asraful Islam Redwan",
	Title:    "Competitive Programmer & Aspiring Software Engineer",
	About: "I am a problem solver at heart. My journey started with Competitive Programming, " +
		"where I learned to optimize algorithms for extreme constraints. Now, I am applying " +
		"that same rigor to building scalable software systems that solve real-world problems.",
	Education: "Student",
	Location:  "Dhaka, Bangladesh",
	Email:     "inbox.air01@gmail.com",
	GitHub:    "https://github.com/redwan",
	LinkedIn:  "https://linkedin.com/in/redwan",
}

type SiteInfo struct {
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	Title     string `json:"title"`
	About     string `json:"about"`
	Education string `json:"education"`
	Location  string `json:"location"`
	Email     string `json:"email"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
	Link        string   `json:"link,omitempty"`
}

type Skill struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"` // frontend, backend, tools, other
}

var Projects = []Project{
	{
		ID:    "1",
		Title: "AlgoFlow Visualizer",
		Description: "A high-performance algorithm simulation engine. Visualizes dynamic " +
			"programming transitions and complex graph traversals with sub-millisecond precision.",
		Tags:     []string{"C++", "WebAssembly", "React", "Canvas"},
		ImageURL: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:    "2",
		Title: "Codeforces Analytics",
		Description: "A deep-dive tool for competitive programmers to analyze their rating " +
			"trajectories, problem difficulty distribution, and time-to-solve metrics.",
		Tags:     []string{"TypeScript", "Next.js", "Redis", "Tailwind"},
		ImageURL: "https://images.unsplash.com/photo-1551288049-bbbda536639a?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:    "3",
		Title: "Sentinel Judge",
		Description: "A distributed sandbox system for safely executing untrusted code. Designed " +
			"for competitive programming contests with strict resource limits.",
		Tags:     []string{"Docker", "Go", "gRPC", "PostgreSQL"},
		ImageURL: "https://images.unsplash.com/photo-1558494949-ef010cbdcc48?auto=format&fit=crop&w=800&q=80",
	},
}

var Skills = []Skill{
	{Name: "C++", Icon: "🚀", Category: "backend"},
	{Name: "Algorithms", Icon: "🧠", Category: "other"},
	{Name: "System Design", Icon: "🏗️", Category: "other"},
	{Name: "Python", Icon: "🐍", Category: "backend"},
	{Name: "React", Icon: "⚛️", Category: "frontend"},
	{Name: "TypeScript", Icon: "📘", Category: "frontend"},
	{Name: "Node.js", Icon: "🟢", Category: "backend"},
	{Name: "Docker", Icon: "🐳", Category: "tools"},
	{Name: "Graph Theory", Icon: "🕸️", Category: "other"},
	{Name: "Problem Solving", Icon: "🧩", Category: "other"},
}

var Gallery = []GalleryItem{
	{
		ID:          "g-official-1",
		Title:       "ICPC Regional Onsite",
		Description: "Team photo from the regional onsite round.",
		Label:       "Official",
		DateTime:    "2025-11-02 14:30",
		ImageURL:    "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?auto=format&fit=crop&w=800&q=80",
		Visibility:  access.VisibilityPublic,
	},
	{
		ID:          "g-official-2",
		Title:       "University Programming Club",
		Description: "Hosting the weekly problem-solving session.",
		Label:       "Official",
		DateTime:    "2025-09-18 19:00",
		ImageURL:    "https://images.unsplash.com/photo-1522071820081-009f0129c71c?auto=format&fit=crop&w=800&q=80",
		Visibility:  access.VisibilityPublic,
	},
	{
		ID:          "g-unofficial-1",
		Title:       "Late Night Contest Setup",
		Description: "Three monitors, one editorial, zero sleep.",
		Label:       "Unofficial",
		DateTime:    "2026-01-11 01:45",
		ImageURL:    "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?auto=format&fit=crop&w=800&q=80",
		Visibility:  access.VisibilityPublic,
	},
	{
		ID:          "g-private-1",
		Title:       "Team Retreat",
		Description: "Private album from the contest team retreat.",
		Label:       "Unofficial",
		DateTime:    "2026-02-20 16:10",
		ImageURL:    "",
		StorageKey:  "gallery/team-retreat.jpg",
		Visibility:  access.VisibilityPrivate,
	},
	{
		ID:          "g-private-2",
		Title:       "Award Ceremony Backstage",
		Description: "Backstage shots shared with the organizing committee.",
		Label:       "Official",
		DateTime:    "2026-03-05 20:00",
		ImageURL:    "",
		StorageKey:  "gallery/award-backstage.jpg",
		Visibility:  access.VisibilityPrivate,
	},
}

var Documents = []DocumentItem{
	{
		ID:          "doc-resume",
		Title:       "Resume",
		Description: "Current single-page resume.",
		Labels:      []string{"Personal"},
		DateTime:    "2026-06-01 09:00",
		FileType:    "PDF",
		FileURL:     "https://cdn.example.com/public/resume.pdf",
		Visibility:  access.VisibilityPublic,
	},
	{
		ID:          "doc-dp-notes",
		Title:       "Dynamic Programming Notes",
		Description: "Compiled DP transition patterns with worked contest problems.",
		Labels:      []string{"Notes", "Algorithms"},
		DateTime:    "2026-04-14 22:15",
		FileType:    "PDF",
		FileURL:     "https://cdn.example.com/public/dp-notes.pdf",
		Visibility:  access.VisibilityPublic,
	},
	{
		ID:          "doc-transcript",
		Title:       "Academic Transcript",
		Description: "Official transcript, shared on request.",
		Labels:      []string{"Personal", "Official"},
		DateTime:    "2026-01-30 10:00",
		FileType:    "PDF",
		StorageKey:  "documents/transcript.pdf",
		Visibility:  access.VisibilityPrivate,
	},
	{
		ID:          "doc-9",
		Title:       "Contest Editorial Draft",
		Description: "Unpublished editorial for the upcoming divisional round.",
		Labels:      []string{"Notes", "Draft"},
		DateTime:    "2026-07-22 18:40",
		FileType:    "DOCX",
		StorageKey:  "documents/editorial-draft.docx",
		Visibility:  access.VisibilityPrivate,
	},
}
