package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// CourseRepo returns a CourseRepository bound to the current transaction.
	CourseRepo() CourseRepository

	// SectionRepo returns a SectionRepository bound to the current transaction.
	SectionRepo() SectionRepository

	// LessonRepo returns a LessonRepository bound to the current transaction.
	LessonRepo() LessonRepository

	// EnrollmentRepo returns an EnrollmentRepository bound to the current transaction.
	EnrollmentRepo() EnrollmentRepository

	// ProgressRepo returns a ProgressRepository bound to the current transaction.
	ProgressRepo() ProgressRepository

	// RefreshTokenRepo returns a RefreshTokenRepository bound to the current transaction.
	RefreshTokenRepo() RefreshTokenRepository
}
