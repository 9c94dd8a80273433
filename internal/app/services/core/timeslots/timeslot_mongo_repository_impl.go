package timeslots

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TimeSlotMongoRepository struct {
	Collection *mongo.Collection
}

func NewTimeSlotMongoRepository(db *mongo.Client, dbName string) contracts.TimeSlotRepository {
	return &TimeSlotMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTimeSlots),
	}
}

func (r *TimeSlotMongoRepository) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return slots, nil
}

func (r *TimeSlotMongoRepository) FindTimeSlotByID(ctx context.Context, timeSlotID string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.Collection.FindOne(ctx, bson.M{"_id": timeSlotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &slot, nil
}

func (r *TimeSlotMongoRepository) CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) (string, error) {
	_, err := r.Collection.InsertOne(ctx, slot)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return slot.ID, nil
}

func (r *TimeSlotMongoRepository) UpdateTimeSlot(ctx context.Context, slot *models.TimeSlot) error {
	update := bson.M{
		"$set": bson.M{
			"label":     slot.Label,
			"startTime": slot.StartTime,
			"endTime":   slot.EndTime,
			"updatedAt": slot.UpdatedAt,
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": slot.ID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *TimeSlotMongoRepository) DeleteTimeSlot(ctx context.Context, timeSlotID string) (bool, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": timeSlotID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}
