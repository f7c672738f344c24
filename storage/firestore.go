package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobtatkal/backend/config"
	"github.com/jobtatkal/backend/models"
)

const (
	usersCollection        = "users"
	jobsCollection         = "jobs"
	companiesCollection    = "companies"
	categoriesCollection   = "categories"
	applicationsCollection = "applications"
	resumesCollection      = "resumes"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("not found")

// FirestoreClient wraps Firestore operations
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// ---- Users ----

// CreateUser creates a new user. The email doubles as document ID for
// uniqueness.
func (f *FirestoreClient) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Role == "" {
		user.Role = models.RoleJobSeeker
	}

	docRef := f.client.Collection(usersCollection).Doc(user.Email)

	_, err := docRef.Get(ctx)
	if err == nil {
		return errors.New("user with this email already exists")
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if _, err := docRef.Set(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = user.Email
	return nil
}

// GetUserByEmail retrieves a user by email
func (f *FirestoreClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := f.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}

	user.ID = doc.Ref.ID
	return &user, nil
}

// UpdateUser merges updates into a user document
func (f *FirestoreClient) UpdateUser(ctx context.Context, email string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := f.client.Collection(usersCollection).Doc(email).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdateUserProfile updates a user's editable profile fields
func (f *FirestoreClient) UpdateUserProfile(ctx context.Context, email string, req models.UpdateProfileRequest) error {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}

	if len(updates) == 0 {
		return nil
	}

	return f.UpdateUser(ctx, email, updates)
}

// UpdateUserRole sets a user's role (admin operation)
func (f *FirestoreClient) UpdateUserRole(ctx context.Context, email, role string) error {
	return f.UpdateUser(ctx, email, map[string]interface{}{"role": role})
}

// ListUsers returns all registered users, newest first (admin operation)
func (f *FirestoreClient) ListUsers(ctx context.Context) ([]models.User, error) {
	iter := f.client.Collection(usersCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var users []models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to parse user data: %w", err)
		}
		user.ID = doc.Ref.ID
		users = append(users, user)
	}

	return users, nil
}

// DeleteUser deletes a user (admin operation)
func (f *FirestoreClient) DeleteUser(ctx context.Context, email string) error {
	if _, err := f.client.Collection(usersCollection).Doc(email).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ---- Jobs ----

// CreateJob creates a job listing with a generated ID
func (f *FirestoreClient) CreateJob(ctx context.Context, job *models.Job) error {
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	docRef := f.client.Collection(jobsCollection).NewDoc()
	if _, err := docRef.Set(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	job.ID = docRef.ID
	return nil
}

// GetJob retrieves a job listing by ID
func (f *FirestoreClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	doc, err := f.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job models.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job data: %w", err)
	}
	job.ID = doc.Ref.ID
	return &job, nil
}

// UpdateJob replaces a job listing's document
func (f *FirestoreClient) UpdateJob(ctx context.Context, id string, job *models.Job) error {
	job.UpdatedAt = time.Now()

	if _, err := f.client.Collection(jobsCollection).Doc(id).Set(ctx, job); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	job.ID = id
	return nil
}

// DeleteJob removes a job listing
func (f *FirestoreClient) DeleteJob(ctx context.Context, id string) error {
	if _, err := f.client.Collection(jobsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// ListActiveJobs returns active listings, newest first. Text search and
// secondary filtering happen in the jobs package; limit <= 0 means no cap.
func (f *FirestoreClient) ListActiveJobs(ctx context.Context, limit int) ([]models.Job, error) {
	query := f.client.Collection(jobsCollection).
		Where("isActive", "==", true).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return f.collectJobs(query.Documents(ctx))
}

// ListJobsByRecruiter returns every listing posted by a recruiter
func (f *FirestoreClient) ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	iter := f.client.Collection(jobsCollection).
		Where("postedBy", "==", recruiterID).
		Documents(ctx)

	return f.collectJobs(iter)
}

func (f *FirestoreClient) collectJobs(iter *firestore.DocumentIterator) ([]models.Job, error) {
	defer iter.Stop()

	var jobsOut []models.Job
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}

		var job models.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, fmt.Errorf("failed to parse job data: %w", err)
		}
		job.ID = doc.Ref.ID
		jobsOut = append(jobsOut, job)
	}

	return jobsOut, nil
}

// ---- Companies and categories ----

// ListCompanies returns the company directory ordered by name
func (f *FirestoreClient) ListCompanies(ctx context.Context) ([]models.Company, error) {
	iter := f.client.Collection(companiesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var companies []models.Company
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}

		var company models.Company
		if err := doc.DataTo(&company); err != nil {
			return nil, fmt.Errorf("failed to parse company data: %w", err)
		}
		company.ID = doc.Ref.ID
		companies = append(companies, company)
	}

	return companies, nil
}

// GetCompany retrieves a company by ID
func (f *FirestoreClient) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	doc, err := f.client.Collection(companiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	var company models.Company
	if err := doc.DataTo(&company); err != nil {
		return nil, fmt.Errorf("failed to parse company data: %w", err)
	}
	company.ID = doc.Ref.ID
	return &company, nil
}

// ListCategories returns all job categories
func (f *FirestoreClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	iter := f.client.Collection(categoriesCollection).Documents(ctx)
	defer iter.Stop()

	var categories []models.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}

		var category models.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("failed to parse category data: %w", err)
		}
		category.ID = doc.Ref.ID
		categories = append(categories, category)
	}

	return categories, nil
}

// GetCategory retrieves a category by ID
func (f *FirestoreClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	doc, err := f.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	var category models.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, fmt.Errorf("failed to parse category data: %w", err)
	}
	category.ID = doc.Ref.ID
	return &category, nil
}

// ---- Applications ----

// CreateApplication records an application unless one already exists for
// the same job and user
func (f *FirestoreClient) CreateApplication(ctx context.Context, app *models.Application) error {
	exists, err := f.HasApplied(ctx, app.JobID, app.UserID)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("already applied to this job")
	}

	app.Status = models.ApplicationStatusApplied
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	docRef := f.client.Collection(applicationsCollection).NewDoc()
	if _, err := docRef.Set(ctx, app); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	app.ID = docRef.ID
	return nil
}

// HasApplied reports whether the user already applied to the job
func (f *FirestoreClient) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("jobId", "==", jobID).
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return true, nil
}

// GetApplication retrieves an application by ID
func (f *FirestoreClient) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	doc, err := f.client.Collection(applicationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	var app models.Application
	if err := doc.DataTo(&app); err != nil {
		return nil, fmt.Errorf("failed to parse application data: %w", err)
	}
	app.ID = doc.Ref.ID
	return &app, nil
}

// ListApplicationsByUser returns a job seeker's applications, newest first
func (f *FirestoreClient) ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	return f.collectApplications(iter)
}

// ListApplicationsByRecruiter returns applications to a recruiter's listings
func (f *FirestoreClient) ListApplicationsByRecruiter(ctx context.Context, recruiterID string) ([]models.Application, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("recruiterId", "==", recruiterID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	return f.collectApplications(iter)
}

func (f *FirestoreClient) collectApplications(iter *firestore.DocumentIterator) ([]models.Application, error) {
	defer iter.Stop()

	var apps []models.Application
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}

		var app models.Application
		if err := doc.DataTo(&app); err != nil {
			return nil, fmt.Errorf("failed to parse application data: %w", err)
		}
		app.ID = doc.Ref.ID
		apps = append(apps, app)
	}

	return apps, nil
}

// UpdateApplicationStatus records a recruiter decision
func (f *FirestoreClient) UpdateApplicationStatus(ctx context.Context, id, appStatus string) error {
	_, err := f.client.Collection(applicationsCollection).Doc(id).Set(ctx, map[string]interface{}{
		"status":    appStatus,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// ---- Resumes ----

// CreateResume records an uploaded resume
func (f *FirestoreClient) CreateResume(ctx context.Context, resume *models.Resume) error {
	resume.CreatedAt = time.Now()

	docRef := f.client.Collection(resumesCollection).NewDoc()
	if _, err := docRef.Set(ctx, resume); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	resume.ID = docRef.ID
	return nil
}

// LatestResumeByUser returns the user's most recent resume record
func (f *FirestoreClient) LatestResumeByUser(ctx context.Context, userID string) (*models.Resume, error) {
	iter := f.client.Collection(resumesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resumes: %w", err)
	}

	var resume models.Resume
	if err := doc.DataTo(&resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}
	resume.ID = doc.Ref.ID
	return &resume, nil
}

// DeleteResume removes a resume record, e.g. after a newer upload
// replaces it
func (f *FirestoreClient) DeleteResume(ctx context.Context, id string) error {
	if _, err := f.client.Collection(resumesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete resume record: %w", err)
	}
	return nil
}

// UpdateResumeParsed persists the fields extracted by a parse_resume
// analysis onto the stored resume record
func (f *FirestoreClient) UpdateResumeParsed(ctx context.Context, id string, skills []string, education, experience string) error {
	_, err := f.client.Collection(resumesCollection).Doc(id).Set(ctx, map[string]interface{}{
		"parsedSkills":     skills,
		"parsedEducation":  education,
		"parsedExperience": experience,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update parsed resume fields: %w", err)
	}
	return nil
}
