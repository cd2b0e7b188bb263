package handler

import (
	"time"

	"campus/internal/domain/entity"
	"campus/internal/usecase"

	"github.com/google/uuid"
)

// Response projections of the domain entities. Handlers never serialize
// entities directly so that internal fields stay internal.

// instructorSummary is the public slice of an instructor shown alongside
// their courses.
type instructorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type courseResponse struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	InstructorID uuid.UUID          `json:"instructorId"`
	Instructor   *instructorSummary `json:"instructor,omitempty"`
	Published    bool               `json:"published"`
	Sections     []sectionResponse  `json:"sections,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type sectionResponse struct {
	ID          uuid.UUID        `json:"id"`
	CourseID    uuid.UUID        `json:"courseId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Order       int              `json:"order"`
	Lessons     []lessonResponse `json:"lessons,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type lessonResponse struct {
	ID        uuid.UUID            `json:"id"`
	SectionID uuid.UUID            `json:"sectionId"`
	Title     string               `json:"title"`
	Type      string               `json:"type"`
	Content   entity.LessonContent `json:"content"`
	Order     int                  `json:"order"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// breadcrumb identifies a parent of the requested resource by id and title.
type breadcrumb struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// lessonDetailResponse is a lesson together with its section and course
// breadcrumbs, returned on single-lesson reads.
type lessonDetailResponse struct {
	lessonResponse
	Section breadcrumb `json:"section"`
	Course  breadcrumb `json:"course"`
}

type enrollmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	CourseID  uuid.UUID       `json:"courseId"`
	Status    string          `json:"status"`
	Progress  float64         `json:"progress"`
	Course    *courseResponse `json:"course,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type progressResponse struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lessonId"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCourseResponse(course *entity.Course) courseResponse {
	resp := courseResponse{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		Category:     course.Category.String(),
		InstructorID: course.InstructorID,
		Published:    course.Published,
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
	}
	if course.Instructor != nil {
		resp.Instructor = &instructorSummary{
			ID:   course.Instructor.ID,
			Name: course.Instructor.Name,
		}
	}
	for _, section := range course.Sections {
		resp.Sections = append(resp.Sections, toSectionResponse(section))
	}

	return resp
}

func toCourseResponses(courses []*entity.Course) []courseResponse {
	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}

	return resp
}

func toSectionResponse(section *entity.Section) sectionResponse {
	resp := sectionResponse{
		ID:          section.ID,
		CourseID:    section.CourseID,
		Title:       section.Title,
		Description: section.Description,
		Order:       section.Order,
		CreatedAt:   section.CreatedAt,
		UpdatedAt:   section.UpdatedAt,
	}
	for _, lesson := range section.Lessons {
		resp.Lessons = append(resp.Lessons, toLessonResponse(lesson))
	}

	return resp
}

func toSectionResponses(sections []*entity.Section) []sectionResponse {
	resp := make([]sectionResponse, 0, len(sections))
	for _, section := range sections {
		resp = append(resp, toSectionResponse(section))
	}

	return resp
}

func toLessonResponse(lesson *entity.Lesson) lessonResponse {
	return lessonResponse{
		ID:        lesson.ID,
		SectionID: lesson.SectionID,
		Title:     lesson.Title,
		Type:      lesson.Type.String(),
		Content:   lesson.Content,
		Order:     lesson.Order,
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}
}

func toLessonDetailResponse(detail *usecase.LessonDetailOutput) lessonDetailResponse {
	return lessonDetailResponse{
		lessonResponse: toLessonResponse(detail.Lesson),
		Section: breadcrumb{
			ID:    detail.Section.ID,
			Title: detail.Section.Title,
		},
		Course: breadcrumb{
			ID:    detail.Course.ID,
			Title: detail.Course.Title,
		},
	}
}

func toLessonResponses(lessons []*entity.Lesson) []lessonResponse {
	resp := make([]lessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		resp = append(resp, toLessonResponse(lesson))
	}

	return resp
}

func toEnrollmentResponse(enrollment *entity.Enrollment) enrollmentResponse {
	resp := enrollmentResponse{
		ID:        enrollment.ID,
		UserID:    enrollment.UserID,
		CourseID:  enrollment.CourseID,
		Status:    enrollment.Status.String(),
		Progress:  enrollment.Progress,
		CreatedAt: enrollment.CreatedAt,
		UpdatedAt: enrollment.UpdatedAt,
	}
	if enrollment.Course != nil {
		course := toCourseResponse(enrollment.Course)
		resp.Course = &course
	}

	return resp
}

func toEnrollmentResponses(enrollments []*entity.Enrollment) []enrollmentResponse {
	resp := make([]enrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		resp = append(resp, toEnrollmentResponse(enrollment))
	}

	return resp
}

func toProgressResponse(progress *entity.Progress) progressResponse {
	return progressResponse{
		ID:        progress.ID,
		LessonID:  progress.LessonID,
		Completed: progress.Completed,
		UpdatedAt: progress.UpdatedAt,
	}
}
