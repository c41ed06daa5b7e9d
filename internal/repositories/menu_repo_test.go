package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"tovio-backoffice/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MenuRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    MenuRepository
	itemID  uuid.UUID
	context context.Context
}

func (suite *MenuRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewMenuRepo(mock)
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *MenuRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestMenuRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MenuRepoTestSuite))
}

func menuItemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "price", "category", "image_url", "is_available", "ingredients", "instructions", "presentation", "shelf_life", "packaging", "is_gluten_free", "is_sugar_free", "created_at", "updated_at"})
}

func (suite *MenuRepoTestSuite) TestCreate_Success() {
	item := &models.MenuItem{
		ID:          uuid.New(),
		Name:        "Chocolate Brownie",
		Price:       120,
		Category:    "Dessert",
		IsAvailable: true,
		Ingredients: "cocoa, butter, flour",
	}

	suite.mock.ExpectExec(`INSERT INTO menu_items`).
		WithArgs(item.ID, item.Name, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.Ingredients, item.Instructions, item.Presentation, item.ShelfLife, item.Packaging, item.IsGlutenFree, item.IsSugarFree).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
}

func (suite *MenuRepoTestSuite) TestCreate_DatabaseError() {
	item := &models.MenuItem{ID: uuid.New(), Name: "Lemon Tart", Price: 90}

	suite.mock.ExpectExec(`INSERT INTO menu_items`).
		WithArgs(item.ID, item.Name, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.Ingredients, item.Instructions, item.Presentation, item.ShelfLife, item.Packaging, item.IsGlutenFree, item.IsSugarFree).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, item)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *MenuRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(menuItemRows().
			AddRow(suite.itemID, "Masala Chai", 40.0, strPtr("Beverage"), (*string)(nil), boolPtr(true), strPtr("tea, milk, spices"), strPtr(""), strPtr(""), strPtr("1 day"), (*string)(nil), boolPtr(true), boolPtr(false), &now, &now))

	result, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Masala Chai", result.Name)
	assert.Equal(suite.T(), 40.0, result.Price)
	assert.True(suite.T(), result.IsAvailable)
}

func (suite *MenuRepoTestSuite) TestGetByID_SparseRowGetsDefaults() {
	// A record written before the newer columns existed: every nullable
	// column comes back NULL and must decode to the documented defaults.
	suite.mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(menuItemRows().
			AddRow(suite.itemID, "Old Cake", 250.0, (*string)(nil), (*string)(nil), (*bool)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*bool)(nil), (*bool)(nil), (*time.Time)(nil), (*time.Time)(nil)))

	result, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "", result.Category)
	assert.Equal(suite.T(), "", result.Ingredients)
	assert.False(suite.T(), result.IsAvailable)
	assert.False(suite.T(), result.IsGlutenFree)
	assert.Nil(suite.T(), result.ImageURL)
	assert.False(suite.T(), result.CreatedAt.IsZero())
}

func (suite *MenuRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), result)
}

func (suite *MenuRepoTestSuite) TestUpdate_Success() {
	item := &models.MenuItem{
		ID:          suite.itemID,
		Name:        "Masala Chai",
		Price:       45,
		Category:    "Beverage",
		IsAvailable: false,
	}

	suite.mock.ExpectExec(`UPDATE menu_items`).
		WithArgs(item.Name, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.Ingredients, item.Instructions, item.Presentation, item.ShelfLife, item.Packaging, item.IsGlutenFree, item.IsSugarFree, item.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, item)
	assert.NoError(suite.T(), err)
}

func (suite *MenuRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM menu_items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
}

func (suite *MenuRepoTestSuite) TestList_Success() {
	now := time.Now()
	rows := menuItemRows().
		AddRow(uuid.New(), "Almond Cookie", 60.0, strPtr("Bakery"), (*string)(nil), boolPtr(true), strPtr(""), strPtr(""), strPtr(""), strPtr(""), (*string)(nil), boolPtr(false), boolPtr(false), &now, &now).
		AddRow(uuid.New(), "Banana Bread", 150.0, strPtr("Bakery"), (*string)(nil), boolPtr(true), strPtr(""), strPtr(""), strPtr(""), strPtr(""), (*string)(nil), boolPtr(false), boolPtr(true), &now, &now)

	suite.mock.ExpectQuery(`SELECT (.+) FROM menu_items ORDER BY name ASC`).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "Almond Cookie", result[0].Name)
	assert.Equal(suite.T(), "Banana Bread", result[1].Name)
}

func (suite *MenuRepoTestSuite) TestList_EmptyResult() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM menu_items ORDER BY name ASC`).
		WillReturnRows(menuItemRows())

	result, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
