package staffs

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StaffMongoRepository is the mongo-backed implementation of the staff
// directory. The scheduling core only ever reads from it.
type StaffMongoRepository struct {
	Collection *mongo.Collection
}

func NewStaffMongoRepository(db *mongo.Client, dbName string) contracts.StaffDirectory {
	return &StaffMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionStaffs),
	}
}

func (r *StaffMongoRepository) GetAllStaff(ctx context.Context) ([]models.Staff, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"deletedAt": nil})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var staffs []models.Staff
	if err := cursor.All(ctx, &staffs); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return staffs, nil
}

func (r *StaffMongoRepository) FindStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	var staff models.Staff
	err := r.Collection.FindOne(ctx, bson.M{"_id": staffID, "deletedAt": nil}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &staff, nil
}
