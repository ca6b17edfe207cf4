package enrich

// indicatorPhrases introduce a list of requirements in free text.
var indicatorPhrases = []string{
	"experience with", "proficient in", "knowledge of", "skilled in",
	"expertise in", "familiar with", "competent in", "strong in",
	"ability to", "experience in", "background in", "understanding of",
	"must know", "required:", "requirements:", "qualifications:",
	"skills:", "abilities:", "competencies:",
}

// commonTerms is the last-resort vocabulary. Order matters: matches are kept
// in this order.
var commonTerms = []string{
	// general
	"Communication", "Leadership", "Teamwork", "Problem Solving", "Time Management",
	"Organization", "Attention to Detail", "Customer Service", "Multitasking",
	"Critical Thinking", "Adaptability", "Collaboration", "Creativity",

	// office
	"Microsoft Office", "Excel", "Word", "PowerPoint", "Email", "Scheduling",
	"Data Entry", "Filing", "Phone Skills", "Calendar Management",

	// sales and marketing
	"Sales", "Marketing", "Social Media", "Advertising", "Cold Calling",
	"Negotiation", "Presentation", "Client Relations", "Account Management",

	// hr
	"Recruiting", "Interviewing", "Onboarding", "HR", "Benefits", "Payroll",
	"Employee Relations", "Training", "Performance Management",

	// support
	"Customer Support", "Help Desk", "Client Relations", "Complaint Resolution",
	"Call Center", "Chat Support", "Email Support",

	// healthcare
	"Patient Care", "Medical Records", "HIPAA", "CPR", "First Aid",
	"Clinical", "Nursing", "Pharmaceutical", "Diagnosis", "Treatment",

	// logistics
	"Driving", "CDL", "Delivery", "Route Planning", "GPS", "Vehicle Maintenance",
	"Logistics", "Supply Chain", "Inventory", "Warehouse",

	// hospitality
	"Customer Service", "Food Service", "Bartending", "Housekeeping",
	"Front Desk", "Reservations", "POS Systems", "Cash Handling",

	// retail
	"Cash Register", "POS", "Inventory Management", "Visual Merchandising",
	"Stocking", "Loss Prevention", "Product Knowledge", "Upselling",

	// manufacturing
	"Assembly", "Quality Control", "Machine Operation", "Forklift",
	"Safety Procedures", "Production", "Packaging", "Inspection",

	// finance
	"Accounting", "Bookkeeping", "QuickBooks", "Financial Analysis",
	"Budgeting", "Tax Preparation", "Auditing", "Accounts Payable",

	// education
	"Teaching", "Curriculum Development", "Classroom Management",
	"Lesson Planning", "Student Assessment", "Tutoring", "Mentoring",

	// basic tech
	"Computer Skills", "Typing", "Internet", "Basic Troubleshooting",
	"Software", "Hardware", "Windows", "Mac", "Mobile Devices",

	// legal
	"Legal Research", "Contract Review", "Compliance", "Documentation",
	"Litigation", "Paralegal", "Case Management",

	// creative
	"Graphic Design", "Photography", "Video Editing", "Writing",
	"Copywriting", "Content Creation", "Adobe", "Photoshop", "Illustrator",

	// professional
	"Project Management", "Report Writing", "Meeting Facilitation",
	"Vendor Management", "Budget Management", "Process Improvement",
}
