package schedules

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CellMongoRepository struct {
	Collection *mongo.Collection
}

func NewCellMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleCellRepository {
	return &CellMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionScheduleCells),
	}
}

// FindCellsByDateRange loads all cells whose date lies in [startDate, endDate].
// Calendar dates sort lexicographically, so a plain string range filter works.
func (r *CellMongoRepository) FindCellsByDateRange(ctx context.Context, startDate, endDate string) ([]models.ScheduleCell, error) {
	filter := bson.M{
		"date": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var cells []models.ScheduleCell
	if err := cursor.All(ctx, &cells); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return cells, nil
}

func (r *CellMongoRepository) FindCell(ctx context.Context, date, timeSlotID string) (*models.ScheduleCell, error) {
	var cell models.ScheduleCell
	err := r.Collection.FindOne(ctx, bson.M{"date": date, "timeSlotId": timeSlotID}).Decode(&cell)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &cell, nil
}

// FindCellByAssignmentID locates the cell currently holding the assignment,
// lookup by id rather than by coordinates.
func (r *CellMongoRepository) FindCellByAssignmentID(ctx context.Context, assignmentID string) (*models.ScheduleCell, error) {
	var cell models.ScheduleCell
	err := r.Collection.FindOne(ctx, bson.M{"assignments.id": assignmentID}).Decode(&cell)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &cell, nil
}

func (r *CellMongoRepository) UpsertCell(ctx context.Context, cell *models.ScheduleCell) error {
	filter := bson.M{"date": cell.Date, "timeSlotId": cell.TimeSlotID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.Collection.ReplaceOne(ctx, filter, cell, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *CellMongoRepository) DeleteCell(ctx context.Context, date, timeSlotID string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"date": date, "timeSlotId": timeSlotID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
