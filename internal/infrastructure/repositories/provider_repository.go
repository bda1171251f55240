package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// DBCategory represents the database model for Category
type DBCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBCategory) TableName() string {
	return "categories"
}

// DBProvider represents the database model for Provider
type DBProvider struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"index;size:128"`
	CategoryID uint   `gorm:"index"`
	LogoURL    string `gorm:"size:512"`
	Active     bool   `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBProvider) TableName() string {
	return "providers"
}

// ProviderRepositoryImpl implements domain.ProviderRepository using GORM
type ProviderRepositoryImpl struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) domain.ProviderRepository {
	return &ProviderRepositoryImpl{db: db}
}

// Create implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Create(ctx context.Context, provider *domain.Provider) error {
	dbProv := domainToDBProvider(provider)
	if err := r.db.WithContext(ctx).Create(dbProv).Error; err != nil {
		return err
	}
	provider.ID = dbProv.ID
	return nil
}

// Update implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Update(ctx context.Context, provider *domain.Provider) error {
	res := r.db.WithContext(ctx).Model(&DBProvider{}).Where("id = ?", provider.ID).
		Updates(map[string]interface{}{
			"name":        provider.Name,
			"category_id": provider.CategoryID,
			"logo_url":    provider.LogoURL,
			"active":      provider.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// FindByID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	var dbProv DBProvider
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbProv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return dbToDomainProvider(&dbProv), nil
}

// List implements domain.ProviderRepository. A zero categoryID lists all
// providers.
func (r *ProviderRepositoryImpl) List(ctx context.Context, categoryID uint) ([]domain.Provider, error) {
	q := r.db.WithContext(ctx).Order("name")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var dbProvs []DBProvider
	if err := q.Find(&dbProvs).Error; err != nil {
		return nil, err
	}
	providers := make([]domain.Provider, 0, len(dbProvs))
	for i := range dbProvs {
		providers = append(providers, *dbToDomainProvider(&dbProvs[i]))
	}
	return providers, nil
}

func domainToDBProvider(p *domain.Provider) *DBProvider {
	return &DBProvider{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		LogoURL:    p.LogoURL,
		Active:     p.Active,
	}
}

func dbToDomainProvider(p *DBProvider) *domain.Provider {
	return &domain.Provider{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		LogoURL:    p.LogoURL,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// CategoryRepositoryImpl implements domain.CategoryRepository using GORM
type CategoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

// Create implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	dbCat := &DBCategory{ID: category.ID, Name: category.Name}
	if err := r.db.WithContext(ctx).Create(dbCat).Error; err != nil {
		return err
	}
	category.ID = dbCat.ID
	return nil
}

// Update implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	res := r.db.WithContext(ctx).Model(&DBCategory{}).Where("id = ?", category.ID).
		Update("name", category.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// FindByID implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var dbCat DBCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbCat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &domain.Category{ID: dbCat.ID, Name: dbCat.Name, CreatedAt: dbCat.CreatedAt, UpdatedAt: dbCat.UpdatedAt}, nil
}

// List implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]domain.Category, error) {
	var dbCats []DBCategory
	if err := r.db.WithContext(ctx).Order("name").Find(&dbCats).Error; err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dbCats))
	for _, c := range dbCats {
		categories = append(categories, domain.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
	}
	return categories, nil
}
