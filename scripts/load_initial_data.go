package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"pms-backend/internal/config"
	"pms-backend/internal/database"
	"pms-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Password    string `yaml:"password"`
	IsSuperuser bool   `yaml:"is_superuser"`
	Position    string `yaml:"position"`
	Department  string `yaml:"department,omitempty"`
}

type TeamData struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Lead        string   `yaml:"lead,omitempty"`
	Members     []string `yaml:"members,omitempty"`
}

type ProjectData struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	TeamName    string  `yaml:"team_name"`
	StartDate   string  `yaml:"start_date"`
	EndDate     string  `yaml:"end_date,omitempty"`
	Status      string  `yaml:"status"`
	Priority    string  `yaml:"priority"`
	Budget      float64 `yaml:"budget,omitempty"`
}

type TestCategoryData struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type TestPriorityData struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Order       int    `yaml:"order"`
}

type TestEnvironmentData struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

type SeedFile struct {
	Users            []UserData            `yaml:"users"`
	Teams            []TeamData            `yaml:"teams"`
	Projects         []ProjectData         `yaml:"projects"`
	TestCategories   []TestCategoryData    `yaml:"test_categories"`
	TestPriorities   []TestPriorityData    `yaml:"test_priorities"`
	TestEnvironments []TestEnvironmentData `yaml:"test_environments"`
}

func main() {
	log.Println("Loading initial data...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from the seed file
	if err := loadSeedData(db, "scripts/data/initial_data.yaml"); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadSeedData(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	// Create users with their employee profiles first
	employeeMap := make(map[string]*models.Employee)
	userCreated := 0
	for _, userData := range seed.Users {
		employee, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Username, err)
		}
		employeeMap[userData.Username] = employee
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(seed.Users))

	// Create teams with their memberships
	teamMap := make(map[string]*models.Team)
	teamCreated := 0
	for _, teamData := range seed.Teams {
		team, created, err := createTeam(db, teamData, employeeMap)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		teamMap[teamData.Name] = team
		if created {
			teamCreated++
		}
	}
	log.Printf("Teams: %d created, %d total", teamCreated, len(seed.Teams))

	// Create projects
	projectCreated := 0
	for _, projectData := range seed.Projects {
		_, created, err := createProject(db, projectData, teamMap)
		if err != nil {
			log.Printf("Warning: failed to create project %s: %v", projectData.Name, err)
			continue
		}
		if created {
			projectCreated++
		}
	}
	log.Printf("Projects: %d created, %d total", projectCreated, len(seed.Projects))

	// Create test lookup tables
	categoryCreated := 0
	for _, categoryData := range seed.TestCategories {
		created, err := createTestCategory(db, categoryData)
		if err != nil {
			return fmt.Errorf("failed to create test category %s: %w", categoryData.Name, err)
		}
		if created {
			categoryCreated++
		}
	}
	log.Printf("Test categories: %d created, %d total", categoryCreated, len(seed.TestCategories))

	priorityCreated := 0
	for _, priorityData := range seed.TestPriorities {
		created, err := createTestPriority(db, priorityData)
		if err != nil {
			return fmt.Errorf("failed to create test priority %s: %w", priorityData.Name, err)
		}
		if created {
			priorityCreated++
		}
	}
	log.Printf("Test priorities: %d created, %d total", priorityCreated, len(seed.TestPriorities))

	environmentCreated := 0
	for _, environmentData := range seed.TestEnvironments {
		created, err := createTestEnvironment(db, environmentData)
		if err != nil {
			return fmt.Errorf("failed to create test environment %s: %w", environmentData.Name, err)
		}
		if created {
			environmentCreated++
		}
	}
	log.Printf("Test environments: %d created, %d total", environmentCreated, len(seed.TestEnvironments))

	return nil
}

func createUser(db *gorm.DB, data UserData) (*models.Employee, bool, error) {
	var existing models.User
	err := db.Where("username = ?", data.Username).First(&existing).Error
	if err == nil {
		var employee models.Employee
		if err := db.Where("user_id = ?", existing.ID).First(&employee).Error; err != nil {
			return nil, false, err
		}
		return &employee, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := models.User{
		Username:     data.Username,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: string(hash),
		IsSuperuser:  data.IsSuperuser,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, err
	}

	employee := models.Employee{
		UserID:     user.ID,
		Position:   data.Position,
		Department: data.Department,
		IsActive:   true,
	}
	if err := db.Create(&employee).Error; err != nil {
		return nil, false, err
	}

	return &employee, true, nil
}

func createTeam(db *gorm.DB, data TeamData, employeeMap map[string]*models.Employee) (*models.Team, bool, error) {
	var existing models.Team
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	team := models.Team{
		Name:        data.Name,
		Description: data.Description,
		IsActive:    true,
	}
	if data.Lead != "" {
		if lead, ok := employeeMap[data.Lead]; ok {
			team.TeamLeadID = &lead.ID
		}
	}
	if err := db.Create(&team).Error; err != nil {
		return nil, false, err
	}

	for _, username := range data.Members {
		employee, ok := employeeMap[username]
		if !ok {
			log.Printf("Warning: unknown member %s for team %s", username, data.Name)
			continue
		}
		membership := models.TeamMembership{
			TeamID:     team.ID,
			EmployeeID: employee.ID,
			Role:       "member",
			JoinedDate: time.Now(),
		}
		if err := db.Create(&membership).Error; err != nil {
			return nil, false, err
		}
	}

	return &team, true, nil
}

func createProject(db *gorm.DB, data ProjectData, teamMap map[string]*models.Team) (*models.Project, bool, error) {
	var existing models.Project
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	team, ok := teamMap[data.TeamName]
	if !ok {
		return nil, false, fmt.Errorf("unknown team %s", data.TeamName)
	}

	startDate, err := time.Parse("2006-01-02", data.StartDate)
	if err != nil {
		return nil, false, fmt.Errorf("invalid start_date: %w", err)
	}

	project := models.Project{
		Name:        data.Name,
		Description: data.Description,
		StartDate:   startDate,
		Status:      models.ProjectStatus(data.Status),
		Priority:    models.Priority(data.Priority),
		TeamID:      team.ID,
	}
	if data.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", data.EndDate)
		if err != nil {
			return nil, false, fmt.Errorf("invalid end_date: %w", err)
		}
		project.EndDate = &endDate
	}
	if data.Budget > 0 {
		project.Budget = &data.Budget
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, false, err
	}

	return &project, true, nil
}

func createTestCategory(db *gorm.DB, data TestCategoryData) (bool, error) {
	var existing models.TestCategory
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	category := models.TestCategory{
		Name:        data.Name,
		Description: data.Description,
	}
	return true, db.Create(&category).Error
}

func createTestPriority(db *gorm.DB, data TestPriorityData) (bool, error) {
	var existing models.TestPriority
	err := db.Where("sort_order = ?", data.Order).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	priority := models.TestPriority{
		Name:        data.Name,
		Description: data.Description,
		Order:       data.Order,
	}
	return true, db.Create(&priority).Error
}

func createTestEnvironment(db *gorm.DB, data TestEnvironmentData) (bool, error) {
	var existing models.TestEnvironment
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	environment := models.TestEnvironment{
		Name:        data.Name,
		Description: data.Description,
		BaseURL:     data.BaseURL,
	}
	return true, db.Create(&environment).Error
}
