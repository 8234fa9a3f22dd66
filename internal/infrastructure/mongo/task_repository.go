// Package mongo persists tasks and users in MongoDB (STORE_DRIVER=mongo).
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	return r.list(ctx, bson.M{})
}

func (r *TaskRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TaskRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *TaskRepository) Save(ctx context.Context, t *entity.Task) error {
	if _, err := r.coll.InsertOne(ctx, toTaskDocument(t)); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID()}, toTaskDocument(t))
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update task %s: no document matched", t.ID())
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

func (r *TaskRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	return r.deleteOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *TaskRepository) deleteOne(ctx context.Context, filter bson.M) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *TaskRepository) findOne(ctx context.Context, filter bson.M) (*entity.Task, error) {
	var doc taskDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toEntity()
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M) ([]*entity.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]*entity.Task, 0, len(docs))
	for _, d := range docs {
		t, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
