package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/minseo-lab/daon/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Purchase failure modes surfaced to the handler
var (
	ErrAlreadyOwned       = errors.New("sticker already owned")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// StickerRepository serves the sticker shop: the catalog lives in MongoDB,
// ownership and point balances live in PostgreSQL.
type StickerRepository interface {
	ListStickers(ctx context.Context) ([]models.Sticker, error)
	GetStickerByID(ctx context.Context, id string) (*models.Sticker, error)
	Purchase(userID uint, sticker *models.Sticker) error
	ListOwned(userID uint) ([]models.StickerPurchase, error)
}

type stickerRepository struct {
	collection *mongo.Collection
	pgdb       *gorm.DB
}

// NewStickerRepository creates a new StickerRepository over MongoDB and PostgreSQL
func NewStickerRepository(db *mongo.Database, pgdb *gorm.DB) StickerRepository {
	return &stickerRepository{collection: db.Collection("stickers"), pgdb: pgdb}
}

func (r *stickerRepository) ListStickers(ctx context.Context) ([]models.Sticker, error) {
	var stickers []models.Sticker
	findOptions := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &stickers); err != nil {
		return nil, err
	}
	return stickers, nil
}

func (r *stickerRepository) GetStickerByID(ctx context.Context, id string) (*models.Sticker, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sticker ID format: %w", err)
	}

	var sticker models.Sticker
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&sticker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sticker not found")
		}
		return nil, err
	}
	return &sticker, nil
}

// Purchase deducts the price from the buyer's points and records ownership
// in one transaction. The point deduction is guarded in SQL, so a balance
// can never go negative under concurrent purchases.
func (r *stickerRepository) Purchase(userID uint, sticker *models.Sticker) error {
	return r.pgdb.Transaction(func(tx *gorm.DB) error {
		purchase := models.StickerPurchase{
			UserID:    userID,
			StickerID: sticker.ID.Hex(),
			Price:     sticker.Price,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&purchase)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyOwned
		}

		res = tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, sticker.Price).
			Update("points", gorm.Expr("points - ?", sticker.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}
		return nil
	})
}

func (r *stickerRepository) ListOwned(userID uint) ([]models.StickerPurchase, error) {
	var purchases []models.StickerPurchase
	err := r.pgdb.Where("user_id = ?", userID).Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}
