package content

import "github.com/sheriffbukari/xtx-training/internal/quiz"

func defaultCatalog() *Catalog {
	return &Catalog{
		Paths:    defaultPaths,
		QuizSets: defaultQuizSets,
		Docs:     defaultDocs,
	}
}

var defaultPaths = []Path{
	{
		Title:       "Web Development Stack",
		Description: "Master HTML, CSS, and JavaScript - the fundamental trio of web development",
		Duration:    "10 weeks",
		Level:       "Beginner",
		Topics:      []string{"HTML5", "CSS3", "JavaScript", "DOM", "API Integration", "Responsive Design"},
		Resources: []Resource{
			{Name: "W3Schools HTML", URL: "https://www.w3schools.com/html/"},
			{Name: "W3Schools CSS", URL: "https://www.w3schools.com/css/"},
			{Name: "W3Schools JavaScript", URL: "https://www.w3schools.com/js/"},
		},
	},
	{
		Title:       "Python Development",
		Description: "Learn Python programming for data science, AI, and web development",
		Duration:    "8 weeks",
		Level:       "Beginner",
		Topics:      []string{"Python Basics", "Data Analysis", "Machine Learning", "Django/Flask", "Scientific Computing"},
		Resources: []Resource{
			{Name: "W3Schools Python", URL: "https://www.w3schools.com/python/"},
			{Name: "freeCodeCamp Python", URL: "https://www.youtube.com/watch?v=rfscVS0vtbw"},
		},
	},
	{
		Title:       "JavaScript & TypeScript",
		Description: "Master modern JavaScript and TypeScript for web development",
		Duration:    "12 weeks",
		Level:       "Intermediate",
		Topics:      []string{"ES6+", "TypeScript", "React", "Node.js", "State Management"},
		Resources: []Resource{
			{Name: "TypeScript Handbook", URL: "https://www.typescriptlang.org/docs/"},
		},
	},
	{
		Title:       "Java Development",
		Description: "Learn Java programming for enterprise and Android development",
		Duration:    "12 weeks",
		Level:       "Intermediate",
		Topics:      []string{"Core Java", "Spring Boot", "Android Dev", "Enterprise Apps", "Cloud Services"},
		Resources: []Resource{
			{Name: "W3Schools Java", URL: "https://www.w3schools.com/java/"},
		},
	},
	{
		Title:       "Rust Programming",
		Description: "Learn Rust for systems programming and web assembly",
		Duration:    "12 weeks",
		Level:       "Advanced",
		Topics:      []string{"Rust Basics", "Memory Safety", "Concurrency", "WebAssembly", "Systems"},
		Resources: []Resource{
			{Name: "Rust Book", URL: "https://doc.rust-lang.org/book/"},
		},
	},
	{
		Title:       "Go Programming",
		Description: "Learn Go for cloud services and system tools",
		Duration:    "8 weeks",
		Level:       "Intermediate",
		Topics:      []string{"Go Basics", "Concurrency", "Microservices", "Cloud Native", "DevOps"},
		Resources: []Resource{
			{Name: "Go by Example", URL: "https://gobyexample.com/"},
		},
	},
}

var defaultQuizSets = []QuizSet{
	{
		ID:    "web-development",
		Title: "Web Development Quiz",
		Questions: []quiz.Question{
			{
				Prompt: "What does HTML stand for?",
				Options: []quiz.Option{
					{ID: "a", Text: "Hyper Text Markup Language"},
					{ID: "b", Text: "High Tech Modern Language"},
					{ID: "c", Text: "Hyper Transfer Markup Language"},
					{ID: "d", Text: "Home Tool Markup Language"},
				},
				CorrectOption: "a",
			},
			{
				Prompt: "Which CSS property is used to change the text color of an element?",
				Options: []quiz.Option{
					{ID: "a", Text: "font-color"},
					{ID: "b", Text: "text-color"},
					{ID: "c", Text: "color"},
					{ID: "d", Text: "text-style"},
				},
				CorrectOption: "c",
			},
			{
				Prompt: "Which of the following is NOT a JavaScript data type?",
				Options: []quiz.Option{
					{ID: "a", Text: "String"},
					{ID: "b", Text: "Boolean"},
					{ID: "c", Text: "Float"},
					{ID: "d", Text: "Object"},
				},
				CorrectOption: "c",
			},
		},
	},
	{
		ID:    "python-basics",
		Title: "Python Basics Quiz",
		Questions: []quiz.Question{
			{
				Prompt: "Which keyword defines a function in Python?",
				Options: []quiz.Option{
					{ID: "a", Text: "func"},
					{ID: "b", Text: "def"},
					{ID: "c", Text: "function"},
					{ID: "d", Text: "lambda"},
				},
				CorrectOption: "b",
			},
			{
				Prompt: "What is the output of len([1, 2, 3])?",
				Options: []quiz.Option{
					{ID: "a", Text: "2"},
					{ID: "b", Text: "3"},
					{ID: "c", Text: "4"},
					{ID: "d", Text: "TypeError"},
				},
				CorrectOption: "b",
			},
		},
	},
}

var defaultDocs = []DocCard{
	{
		Name:        "Web Development Stack",
		Description: "The fundamental trio of web development: HTML for structure, CSS for styling, and JavaScript for interactivity.",
		Benefits: []string{
			"Universal web platform support",
			"Immediate visual feedback during development",
			"Huge ecosystem of frameworks and tools",
		},
		UseCases: []string{
			"Modern web applications",
			"Progressive Web Apps (PWAs)",
			"Single Page Applications (SPAs)",
		},
	},
	{
		Name:        "Python",
		Description: "Known for its simplicity and readability, perfect for beginners and professionals alike.",
		Benefits: []string{
			"Easy to learn and read",
			"Extensive standard library",
			"Strong data-science ecosystem",
		},
		UseCases: []string{
			"Data analysis and visualization",
			"Machine learning",
			"Web backends",
		},
	},
	{
		Name:        "Go",
		Description: "A statically typed, compiled language designed for simplicity and efficient concurrency.",
		Benefits: []string{
			"Fast compilation and execution",
			"First-class concurrency primitives",
			"Single static binary deployment",
		},
		UseCases: []string{
			"Cloud services",
			"CLI tooling",
			"Network servers",
		},
	},
}
