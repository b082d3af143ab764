package cataloging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cataloger cadastra categorias e produtos
type Cataloger interface {
	CreateCategory(ctx context.Context, input domain.NewCategory) (*domain.CategoryCreated, error)
	CreateProduct(ctx context.Context, input domain.NewProduct) (*domain.ProductCreated, error)
	UpdateProduct(ctx context.Context, id int64, input domain.ProductUpdate) (*domain.ProductUpdated, error)
	ImportProductsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error)
}

// ReportInvalidator descarta relatórios em cache depois de uma escrita
type ReportInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type Service struct {
	categoryRepository repository.CategoryRepository
	productRepository  repository.ProductRepository
	invalidator        ReportInvalidator
	validate           *validator.Validate
	uploadDir          string
	maxUploadBytes     int64
}

func NewService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	invalidator ReportInvalidator,
	uploadDir string,
	maxUploadBytes int64,
) *Service {
	return &Service{
		categoryRepository: categoryRepo,
		productRepository:  productRepo,
		invalidator:        invalidator,
		validate:           validator.New(validator.WithRequiredStructEnabled()),
		uploadDir:          uploadDir,
		maxUploadBytes:     maxUploadBytes,
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
}

// normalizeName remove espaços repetidos e aplica title case ("material  escolar" → "Material Escolar")
func (s *Service) normalizeName(name string) string {
	// Caser guarda estado, por isso um novo a cada chamada
	return cases.Title(language.BrazilianPortuguese).String(strings.Join(strings.Fields(name), " "))
}

func (s *Service) CreateCategory(ctx context.Context, input domain.NewCategory) (*domain.CategoryCreated, error) {
	input.Name = s.normalizeName(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, NewCatalogError(ErrInvalidCategory, apiErrors.ErrMissingRequiredData, validationDetails(err))
	}

	category, err := s.categoryRepository.Create(ctx, input.Name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, NewCatalogError(ErrCategoryExists, apiErrors.ErrResourceConflict, input.Name)
		}
		logrus.WithError(err).Error("Erro ao criar categoria")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	s.invalidate(ctx)
	logrus.WithField("category_id", category.ID).Info("Categoria criada")

	return &domain.CategoryCreated{
		Message:  "Categoria criada com sucesso",
		Category: *category,
	}, nil
}

func (s *Service) CreateProduct(ctx context.Context, input domain.NewProduct) (*domain.ProductCreated, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.validate.Struct(input); err != nil {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidRequest, validationDetails(err))
	}

	categoryNotFound := NewCatalogError(
		ErrCategoryNotFound,
		apiErrors.ErrResourceNotFound,
		fmt.Sprintf("Categoria ID %d não existe", input.CategoryID),
	)

	category, err := s.categoryRepository.GetByID(ctx, int64(input.CategoryID))
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar categoria")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}
	if category == nil {
		return nil, categoryNotFound
	}

	product, err := s.productRepository.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, categoryNotFound
		}
		logrus.WithError(err).Error("Erro ao criar produto")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	s.invalidate(ctx)
	logrus.WithField("product_id", product.ID).Info("Produto criado")

	return &domain.ProductCreated{
		Message: "Produto criado com sucesso",
		Product: *product,
		Status:  "success",
	}, nil
}

// UpdateProduct altera preço e, opcionalmente, o total vendido informado manualmente
func (s *Service) UpdateProduct(ctx context.Context, id int64, input domain.ProductUpdate) (*domain.ProductUpdated, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidRequest, validationDetails(err))
	}

	notFound := NewCatalogError(ErrProductNotFound, apiErrors.ErrResourceNotFound, fmt.Sprintf("Produto ID %d não existe", id))

	if err := s.productRepository.UpdatePricing(ctx, id, *input.Price, input.TotalSold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		logrus.WithError(err).WithField("product_id", id).Error("Erro ao atualizar produto")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("product_id", id).Error("Erro ao buscar produto atualizado")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}
	if product == nil {
		return nil, notFound
	}

	if product.TotalSoldOverride != nil {
		product.TotalSold = *product.TotalSoldOverride
		product.Revenue = product.Price * float64(*product.TotalSoldOverride)
	}

	s.invalidate(ctx)

	return &domain.ProductUpdated{
		Message: "Produto atualizado com sucesso",
		Product: *product,
	}, nil
}

// validationDetails descreve os campos inválidos de forma legível
func validationDetails(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}

	return "campos inválidos: " + strings.Join(fields, ", ")
}
