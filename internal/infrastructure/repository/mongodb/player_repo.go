package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

const (
	statsTopStates = 10
	statsDays      = 7
)

// MongoPlayerRepository is the MongoDB implementation of IPlayerRepository.
type MongoPlayerRepository struct {
	collection *mongo.Collection
}

var _ contract.IPlayerRepository = (*MongoPlayerRepository)(nil)

func NewMongoPlayerRepository(collection *mongo.Collection) *MongoPlayerRepository {
	return &MongoPlayerRepository{collection: collection}
}

// listProjection hides secrets and request metadata from listings.
var listProjection = bson.M{"password_hash": 0, "registration_metadata": 0}

func (r *MongoPlayerRepository) CreatePlayer(ctx context.Context, player *entity.Player) error {
	_, err := r.collection.InsertOne(ctx, player)
	return translateError("failed to create player", err)
}

// FindByAnyID resolves id against player id, user id, internal key and
// username, in that order. When several players match, the earliest
// identifier kind wins.
func (r *MongoPlayerRepository) FindByAnyID(ctx context.Context, id string) (*entity.Player, error) {
	playerID := strings.ToUpper(id)
	filter := bson.M{"$or": bson.A{
		bson.M{"player_id": playerID},
		bson.M{"user_id": id},
		bson.M{"_id": id},
		bson.M{"username": id},
	}}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(4))
	if err != nil {
		return nil, translateError("failed to retrieve player", err)
	}
	var matches []*entity.Player
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, translateError("failed to decode player", err)
	}

	matchers := []func(*entity.Player) bool{
		func(p *entity.Player) bool { return p.PlayerID == playerID },
		func(p *entity.Player) bool { return p.UserID == id },
		func(p *entity.Player) bool { return p.ID == id },
		func(p *entity.Player) bool { return p.Username == id },
	}
	for _, match := range matchers {
		for _, p := range matches {
			if match(p) {
				return p, nil
			}
		}
	}
	return nil, entity.ErrPlayerNotFound
}

func (r *MongoPlayerRepository) GetPlayerByEmail(ctx context.Context, email string) (*entity.Player, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoPlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*entity.Player, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoPlayerRepository) GetPlayerByPhone(ctx context.Context, phone string) (*entity.Player, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MongoPlayerRepository) findOne(ctx context.Context, filter bson.M) (*entity.Player, error) {
	var player entity.Player
	if err := r.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		return nil, translateError("failed to retrieve player", err)
	}
	return &player, nil
}

func (r *MongoPlayerRepository) UserIDExists(ctx context.Context, userID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, translateError("failed to check user id", err)
	}
	return n > 0, nil
}

// buildPlayerFilter turns list options into a BSON filter.
func buildPlayerFilter(f entity.PlayerFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.State != "" {
		filter["state"] = caseInsensitive("^" + regexp.QuoteMeta(f.State) + "$")
	}
	if f.Search != "" {
		pattern := caseInsensitive(regexp.QuoteMeta(f.Search))
		filter["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"email": pattern},
			bson.M{"player_id": pattern},
			bson.M{"username": pattern},
			bson.M{"city": pattern},
		}
	}
	return filter
}

func caseInsensitive(pattern string) bson.M {
	return bson.M{"$regex": pattern, "$options": "i"}
}

func (r *MongoPlayerRepository) ListPlayers(ctx context.Context, f entity.PlayerFilter) ([]*entity.Player, int64, error) {
	filter := buildPlayerFilter(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translateError("failed to count players", err)
	}

	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "registration_date", Value: -1}, {Key: "sequence_number", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translateError("failed to list players", err)
	}
	defer cursor.Close(ctx)

	players := []*entity.Player{}
	if err := cursor.All(ctx, &players); err != nil {
		return nil, 0, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, total, nil
}

type statsFacet struct {
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
	ByRole  []entity.GroupCount `bson:"by_role"`
	ByState []entity.GroupCount `bson:"by_state"`
	ByDay   []entity.GroupCount `bson:"by_day"`
}

// statsPipeline computes every aggregate in one $facet pass. Day buckets are UTC dates.
func statsPipeline(now time.Time) mongo.Pipeline {
	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(statsDays - 1))
	countBy := func(key interface{}) bson.D {
		return bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: key},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
	}
	byCountDesc := bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}}

	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.D{
			{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
			{Key: "by_role", Value: bson.A{countBy("$role"), byCountDesc}},
			{Key: "by_state", Value: bson.A{countBy("$state"), byCountDesc, bson.D{{Key: "$limit", Value: statsTopStates}}}},
			{Key: "by_day", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "registration_date", Value: bson.D{{Key: "$gte", Value: since}}}}}},
				countBy(bson.D{{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$registration_date"},
				}}}),
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
		}}},
	}
}

func (r *MongoPlayerRepository) AggregateStats(ctx context.Context, now time.Time) (*entity.PlayerStats, error) {
	cursor, err := r.collection.Aggregate(ctx, statsPipeline(now))
	if err != nil {
		return nil, translateError("failed to aggregate player stats", err)
	}
	defer cursor.Close(ctx)

	var facets []statsFacet
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("failed to decode player stats: %w", err)
	}

	stats := &entity.PlayerStats{
		ByRole:  []entity.GroupCount{},
		ByState: []entity.GroupCount{},
		ByDay:   []entity.GroupCount{},
	}
	if len(facets) == 0 {
		return stats, nil
	}
	f := facets[0]
	if len(f.Total) > 0 {
		stats.TotalPlayers = f.Total[0].Count
	}
	if f.ByRole != nil {
		stats.ByRole = f.ByRole
	}
	if f.ByState != nil {
		stats.ByState = f.ByState
	}
	if f.ByDay != nil {
		stats.ByDay = f.ByDay
	}
	return stats, nil
}

func (r *MongoPlayerRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	update := bson.M{
		"$set": bson.M{"last_login": at},
		"$inc": bson.M{"login_count": 1},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateError("failed to record login", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrPlayerNotFound
	}
	return nil
}

func (r *MongoPlayerRepository) Ping(ctx context.Context) error {
	if err := r.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return translateError("failed to ping database", err)
	}
	return nil
}
