package cataloging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateCache(ctx context.Context) {
	c.calls++
}

type catalogMocks struct {
	categories  *mocks.MockCategoryRepository
	products    *mocks.MockProductRepository
	invalidator *countingInvalidator
	uploadDir   string
}

func newTestService(t *testing.T, maxUploadBytes int64) (*Service, catalogMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := catalogMocks{
		categories:  mocks.NewMockCategoryRepository(ctrl),
		products:    mocks.NewMockProductRepository(ctrl),
		invalidator: &countingInvalidator{},
		uploadDir:   t.TempDir(),
	}

	return NewService(m.categories, m.products, m.invalidator, m.uploadDir, maxUploadBytes), m
}

func catalogCode(t *testing.T, err error) string {
	t.Helper()
	var catalogErr *CatalogError
	require.ErrorAs(t, err, &catalogErr)
	return catalogErr.Code
}

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		setup    func(m catalogMocks)
		validate func(t *testing.T, m catalogMocks, result *domain.CategoryCreated, err error)
	}{
		{
			name:  "normaliza o nome e cria",
			input: "  material   escolar ",
			setup: func(m catalogMocks) {
				m.categories.EXPECT().Create(gomock.Any(), "Material Escolar").Return(&domain.Category{ID: 4, Name: "Material Escolar"}, nil)
			},
			validate: func(t *testing.T, m catalogMocks, result *domain.CategoryCreated, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(4), result.Category.ID)
				assert.Equal(t, 1, m.invalidator.calls)
			},
		},
		{
			name:  "nome vazio",
			input: "   ",
			setup: func(m catalogMocks) {},
			validate: func(t *testing.T, m catalogMocks, result *domain.CategoryCreated, err error) {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				assert.Equal(t, "VAL_002", catalogCode(t, err))
			},
		},
		{
			name:  "categoria duplicada",
			input: "papelaria",
			setup: func(m catalogMocks) {
				m.categories.EXPECT().Create(gomock.Any(), "Papelaria").Return(nil, fmt.Errorf("erro ao criar categoria: %w", repository.ErrConflict))
			},
			validate: func(t *testing.T, m catalogMocks, result *domain.CategoryCreated, err error) {
				assert.ErrorIs(t, err, ErrCategoryExists)
				assert.Equal(t, "RES_002", catalogCode(t, err))
				assert.Equal(t, 0, m.invalidator.calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, 0)
			tt.setup(m)

			result, err := svc.CreateCategory(context.Background(), domain.NewCategory{Name: tt.input})
			tt.validate(t, m, result, err)
		})
	}
}

func TestCreateProduct(t *testing.T) {
	valid := domain.NewProduct{Name: " Caneta ", Description: "Azul", Price: 2.5, CategoryID: 1}

	tests := []struct {
		name     string
		input    domain.NewProduct
		setup    func(m catalogMocks)
		validate func(t *testing.T, result *domain.ProductCreated, err error)
	}{
		{
			name:  "cria produto",
			input: valid,
			setup: func(m catalogMocks) {
				m.categories.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&domain.Category{ID: 1, Name: "Papelaria"}, nil)
				m.products.EXPECT().Create(gomock.Any(), domain.NewProduct{Name: "Caneta", Description: "Azul", Price: 2.5, CategoryID: 1}).
					Return(&domain.Product{ID: 10, Name: "Caneta", Price: 2.5, CategoryID: 1}, nil)
			},
			validate: func(t *testing.T, result *domain.ProductCreated, err error) {
				require.NoError(t, err)
				assert.Equal(t, "success", result.Status)
				assert.Equal(t, int64(10), result.Product.ID)
			},
		},
		{
			name:  "categoria inexistente",
			input: valid,
			setup: func(m catalogMocks) {
				m.categories.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, nil)
			},
			validate: func(t *testing.T, result *domain.ProductCreated, err error) {
				assert.ErrorIs(t, err, ErrCategoryNotFound)
				assert.Equal(t, "RES_001", catalogCode(t, err))
				assert.Contains(t, err.Error(), "Categoria ID 1 não existe")
			},
		},
		{
			name:  "preço negativo",
			input: domain.NewProduct{Name: "Caneta", Price: -1, CategoryID: 1},
			setup: func(m catalogMocks) {},
			validate: func(t *testing.T, result *domain.ProductCreated, err error) {
				assert.ErrorIs(t, err, ErrInvalidProduct)
				assert.Equal(t, "VAL_001", catalogCode(t, err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, 0)
			tt.setup(m)

			result, err := svc.CreateProduct(context.Background(), tt.input)
			tt.validate(t, result, err)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	price := 12.0
	totalSold := 3

	t.Run("atualiza preço e total vendido", func(t *testing.T) {
		svc, m := newTestService(t, 0)
		m.products.EXPECT().UpdatePricing(gomock.Any(), int64(5), 12.0, &totalSold).Return(nil)
		m.products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.Product{ID: 5, Price: 12, TotalSoldOverride: &totalSold}, nil)

		result, err := svc.UpdateProduct(context.Background(), 5, domain.ProductUpdate{Price: &price, TotalSold: &totalSold})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Product.TotalSold)
		assert.Equal(t, 36.0, result.Product.Revenue)
		assert.Equal(t, 1, m.invalidator.calls)
	})

	t.Run("produto inexistente", func(t *testing.T) {
		svc, m := newTestService(t, 0)
		m.products.EXPECT().UpdatePricing(gomock.Any(), int64(99), 12.0, gomock.Nil()).Return(sql.ErrNoRows)

		_, err := svc.UpdateProduct(context.Background(), 99, domain.ProductUpdate{Price: &price})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("preço ausente", func(t *testing.T) {
		svc, _ := newTestService(t, 0)

		_, err := svc.UpdateProduct(context.Background(), 1, domain.ProductUpdate{})
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})
}

func TestImportProductsCSV(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		maxBytes int64
		setup    func(m catalogMocks)
		validate func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error)
	}{
		{
			name:     "importação parcial",
			filename: "produtos.CSV",
			content: "\ufeffname,description,price,category_id\n" +
				"Caneta,Azul,2.5,1\n" +
				"Lápis,,abc,1\n" +
				"Mochila,Grande,80,9\n" +
				",Sem nome,1,1\n" +
				"Caderno,,10,2\n",
			setup: func(m catalogMocks) {
				m.categories.EXPECT().ExistingIDs(gomock.Any(), []int64{1, 9, 2}).Return(map[int64]bool{1: true, 2: true}, nil)
				m.products.EXPECT().CreateBatch(gomock.Any(), []domain.NewProduct{
					{Name: "Caneta", Description: "Azul", Price: 2.5, CategoryID: 1},
					{Name: "Caderno", Price: 10, CategoryID: 2},
				}).Return(2, nil)
			},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.Count)
				assert.Equal(t, "2 produtos importados com sucesso", result.Message)
				assert.Equal(t, []string{
					`Linha 2: preço inválido "abc"`,
					"Linha 3: Categoria ID 9 não existe",
					"Linha 4: nome é obrigatório",
				}, result.Errors)
				assert.Equal(t, 1, m.invalidator.calls)
			},
		},
		{
			name:     "somente cabeçalho",
			filename: "produtos.csv",
			content:  "name,price,category_id\n",
			setup: func(m catalogMocks) {
				m.products.EXPECT().CreateBatch(gomock.Any(), []domain.NewProduct{}).Return(0, nil)
			},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Count)
				assert.Nil(t, result.Errors)
				assert.Equal(t, 0, m.invalidator.calls)
			},
		},
		{
			name:     "extensão não permitida",
			filename: "produtos.xlsx",
			content:  "name,price,category_id\n",
			setup:    func(m catalogMocks) {},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				assert.ErrorIs(t, err, ErrInvalidFileType)
			},
		},
		{
			name:     "arquivo vazio",
			filename: "produtos.csv",
			content:  "",
			setup:    func(m catalogMocks) {},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				assert.ErrorIs(t, err, ErrEmptyFile)
				assert.Equal(t, "VAL_005", catalogCode(t, err))
			},
		},
		{
			name:     "colunas ausentes",
			filename: "produtos.csv",
			content:  "name,valor\nCaneta,2\n",
			setup:    func(m catalogMocks) {},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				assert.ErrorIs(t, err, ErrMissingColumns)
			},
		},
		{
			name:     "arquivo acima do limite",
			filename: "produtos.csv",
			content:  "name,price,category_id\n" + strings.Repeat("Caneta,1,1\n", 10),
			maxBytes: 32,
			setup:    func(m catalogMocks) {},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				assert.ErrorIs(t, err, ErrFileTooLarge)
				assert.Equal(t, "VAL_006", catalogCode(t, err))
			},
		},
		{
			name:     "erro ao gravar",
			filename: "produtos.csv",
			content:  "name,price,category_id\nCaneta,1,1\n",
			setup: func(m catalogMocks) {
				m.categories.EXPECT().ExistingIDs(gomock.Any(), []int64{1}).Return(map[int64]bool{1: true}, nil)
				m.products.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(0, errors.New("deadlock"))
			},
			validate: func(t *testing.T, m catalogMocks, result *domain.ImportResult, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, tt.maxBytes)
			tt.setup(m)

			result, err := svc.ImportProductsCSV(context.Background(), tt.filename, strings.NewReader(tt.content))
			tt.validate(t, m, result, err)

			entries, readErr := os.ReadDir(m.uploadDir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "arquivo temporário deve ser removido")
		})
	}
}
