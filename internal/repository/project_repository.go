package repository

import (
	"context"
	"strings"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, search string, status domain.ProjectStatus, clientID *uuid.UUID) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{}).Preload("Client")

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(address) LIKE ?", searchPattern, searchPattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&projects).Error

	return projects, total, err
}

func (r *ProjectRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// AppendImages adds uploaded file paths to the project's image list
func (r *ProjectRepository) AppendImages(ctx context.Context, id uuid.UUID, paths []string) error {
	var project domain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return err
	}
	project.Images = append(project.Images, paths...)
	return r.db.WithContext(ctx).Model(&project).Update("images", pq.StringArray(project.Images)).Error
}

// AppendDocuments adds uploaded file paths to the project's document list
func (r *ProjectRepository) AppendDocuments(ctx context.Context, id uuid.UUID, paths []string) error {
	var project domain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return err
	}
	project.Documents = append(project.Documents, paths...)
	return r.db.WithContext(ctx).Model(&project).Update("documents", pq.StringArray(project.Documents)).Error
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error
	return int(count), err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("status = ?", status).Count(&count).Error
	return int(count), err
}
