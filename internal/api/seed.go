package api

import (
	"log"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"gorm.io/gorm"
)

// seedDemoData inserts a small demo campus so the UI has something to show.
// FirstOrCreate keeps repeated startups idempotent.
func seedDemoData(db *gorm.DB) {
	minPkg := func(v float64) *float64 { return &v }

	students := []domain.Student{
		{
			ID: "STU_2024_0001", Name: "Aditya Kumar", Email: "aditya@college.edu",
			Branch: "CSE", CGPA: 8.7, ActiveBacklogs: 0, GraduationYear: 2025,
			Phone:          "9876543001",
			Skills:         domain.StringList{"Python", "Django", "React", "PostgreSQL", "Docker"},
			Projects:       domain.StringList{"E-commerce Platform", "ML Sentiment Analyzer"},
			Certifications: domain.StringList{"AWS Cloud Practitioner"},
		},
		{
			ID: "STU_2024_0002", Name: "Priya Sharma", Email: "priya@college.edu",
			Branch: "IT", CGPA: 9.1, ActiveBacklogs: 0, GraduationYear: 2025,
			Phone:          "9876543002",
			Skills:         domain.StringList{"Java", "Spring Boot", "Microservices", "MySQL", "Kubernetes"},
			Projects:       domain.StringList{"Banking System Backend", "REST API Gateway"},
			Certifications: domain.StringList{"Oracle Java SE", "Google Cloud Associate"},
		},
		{
			ID: "STU_2024_0005", Name: "Arjun Singh", Email: "arjun@college.edu",
			Branch: "CSE", CGPA: 6.8, ActiveBacklogs: 2, GraduationYear: 2025,
			Phone:    "9876543005",
			Skills:   domain.StringList{"C++", "Data Structures", "Algorithms"},
			Projects: domain.StringList{"Sorting Visualizer"},
		},
	}

	drives := []domain.Drive{
		{
			ID: "DRIVE_TCS_2026", CompanyName: "TCS", JobRole: "Software Developer",
			JDText:           "Looking for software developer with strong fundamentals in Python or Java. Experience with web frameworks, databases and cloud technologies.",
			RequiredSkills:   domain.StringList{"Python", "Java", "SQL", "REST APIs"},
			MinCGPA:          6.0, MaxBacklogs: 0,
			EligibleBranches: domain.StringList{"CSE", "IT", "ECE", "MCA"},
			Location:         "Bangalore / Chennai / Hyderabad",
			PackageMin:       minPkg(7.0), PackageMax: minPkg(9.0),
			DriveDate:        "2025-03-15", Status: domain.DriveStatusActive,
		},
		{
			ID: "DRIVE_INFOSYS_2026", CompanyName: "Infosys", JobRole: "Systems Engineer",
			JDText:           "Entry-level systems engineer role for fresh graduates. Basic programming knowledge in any language.",
			RequiredSkills:   domain.StringList{"Programming Basics", "Communication"},
			MinCGPA:          6.5, MaxBacklogs: 2,
			EligibleBranches: domain.StringList{"CSE", "IT", "ECE", "MCA"},
			Location:         "Pan India",
			PackageMin:       minPkg(3.5), PackageMax: minPkg(5.0),
			DriveDate:        "2025-03-20", Status: domain.DriveStatusActive,
		},
	}

	for i := range students {
		if err := db.Where("id = ?", students[i].ID).FirstOrCreate(&students[i]).Error; err != nil {
			log.Printf("seed student %s error: %v", students[i].ID, err)
		}
	}
	for i := range drives {
		if err := db.Where("id = ?", drives[i].ID).FirstOrCreate(&drives[i]).Error; err != nil {
			log.Printf("seed drive %s error: %v", drives[i].ID, err)
		}
	}
	log.Println("demo data seeded")
}
