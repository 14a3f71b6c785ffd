package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"streetnetwork.app/kinship/internal/model"
)

// The Discord bot owns this collection; timestamps arrive either as BSON
// dates or as ISO strings depending on which bot version wrote them.
type userStatsDoc struct {
	UserID            string           `bson:"user_id"`
	Username          string           `bson:"username"`
	Avatar            string           `bson:"avatar"`
	TotalInteractions int64            `bson:"total_interactions"`
	LastActive        any              `bson:"last_active"`
	FirstInteraction  any              `bson:"first_interaction"`
	Interactions      []interactionDoc `bson:"interactions"`
	Details           *detailsDoc      `bson:"details"`
}

type interactionDoc struct {
	Type        string  `bson:"type"`
	Timestamp   any     `bson:"timestamp"`
	ChannelID   string  `bson:"channel_id"`
	ChannelName string  `bson:"channel_name"`
	GuildID     string  `bson:"guild_id"`
	GuildName   string  `bson:"guild_name"`
	Command     *string `bson:"command"`
	Message     string  `bson:"message"`
}

type detailsDoc struct {
	LastChannel       string `bson:"last_channel"`
	LastGuild         string `bson:"last_guild"`
	LastInteraction   any    `bson:"last_interaction"`
	LastMessage       string `bson:"last_message"`
	TotalInteractions int64  `bson:"total_interactions"`
	Username          string `bson:"username"`
}

type channelActivityDoc struct {
	ChannelID         string `bson:"channel_id"`
	ChannelName       string `bson:"channel_name"`
	TotalInteractions int64  `bson:"total_interactions"`
	UniqueUsers       int64  `bson:"unique_users"`
}

type discordStatsStore struct {
	coll *mongo.Collection
}

func NewDiscordStatsStore(db *mongo.Database, collection string) DiscordStatsStore {
	return &discordStatsStore{coll: db.Collection(collection)}
}

func (s *discordStatsStore) ListMembers(ctx context.Context) ([]model.DiscordMember, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "total_interactions", Value: -1}}).
		SetProjection(bson.M{"user_id": 1, "username": 1, "total_interactions": 1, "last_active": 1, "avatar": 1}))
	if err != nil {
		return nil, fmt.Errorf("listing discord members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []model.DiscordMember{}
	for cursor.Next(ctx) {
		var doc userStatsDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding discord member: %w", err)
		}
		members = append(members, toDiscordMember(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *discordStatsStore) GetMember(ctx context.Context, discordUserID string) (*model.DiscordMemberStats, error) {
	var doc userStatsDoc
	if err := s.coll.FindOne(ctx, bson.M{"user_id": discordUserID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting discord member: %w", err)
	}
	return toDiscordMemberStats(doc), nil
}

func (s *discordStatsStore) Totals(ctx context.Context) (DiscordTotals, error) {
	cursor, err := s.coll.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id":                nil,
			"total_interactions": bson.M{"$sum": "$total_interactions"},
			"first_interaction":  bson.M{"$min": "$first_interaction"},
		}},
	})
	if err != nil {
		return DiscordTotals{}, fmt.Errorf("aggregating discord totals: %w", err)
	}
	defer cursor.Close(ctx)

	var row struct {
		TotalInteractions int64 `bson:"total_interactions"`
		FirstInteraction  any   `bson:"first_interaction"`
	}
	if !cursor.Next(ctx) {
		return DiscordTotals{}, cursor.Err()
	}
	if err := cursor.Decode(&row); err != nil {
		return DiscordTotals{}, fmt.Errorf("decoding discord totals: %w", err)
	}
	return DiscordTotals{
		TotalInteractions: row.TotalInteractions,
		FirstInteraction:  bsonTime(row.FirstInteraction),
	}, nil
}

func (s *discordStatsStore) ChannelActivity(ctx context.Context) ([]ChannelActivity, error) {
	cursor, err := s.coll.Aggregate(ctx, []bson.M{
		{"$unwind": "$interactions"},
		{"$group": bson.M{
			"_id": bson.M{
				"channel_id":   "$interactions.channel_id",
				"channel_name": "$interactions.channel_name",
			},
			"total_interactions": bson.M{"$sum": 1},
			"unique_users":       bson.M{"$addToSet": "$user_id"},
		}},
		{"$project": bson.M{
			"_id":                0,
			"channel_id":         "$_id.channel_id",
			"channel_name":       "$_id.channel_name",
			"total_interactions": 1,
			"unique_users":       bson.M{"$size": "$unique_users"},
		}},
		{"$sort": bson.M{"total_interactions": -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregating channel activity: %w", err)
	}
	defer cursor.Close(ctx)

	activity := []ChannelActivity{}
	for cursor.Next(ctx) {
		var doc channelActivityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding channel activity: %w", err)
		}
		activity = append(activity, ChannelActivity(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return activity, nil
}

func toDiscordMember(doc userStatsDoc) model.DiscordMember {
	return model.DiscordMember{
		UserID:            doc.UserID,
		Username:          doc.Username,
		Avatar:            doc.Avatar,
		TotalInteractions: doc.TotalInteractions,
		LastActive:        bsonTime(doc.LastActive),
	}
}

func toDiscordMemberStats(doc userStatsDoc) *model.DiscordMemberStats {
	stats := &model.DiscordMemberStats{
		DiscordMember:    toDiscordMember(doc),
		FirstInteraction: bsonTime(doc.FirstInteraction),
		Interactions:     make([]model.DiscordInteraction, len(doc.Interactions)),
	}
	for i, in := range doc.Interactions {
		stats.Interactions[i] = model.DiscordInteraction{
			Type:        in.Type,
			Timestamp:   bsonTime(in.Timestamp),
			ChannelID:   in.ChannelID,
			ChannelName: in.ChannelName,
			GuildID:     in.GuildID,
			GuildName:   in.GuildName,
			Command:     in.Command,
			Message:     in.Message,
		}
	}
	if d := doc.Details; d != nil {
		stats.Details = &model.DiscordMemberDetails{
			LastChannel:       d.LastChannel,
			LastGuild:         d.LastGuild,
			LastInteraction:   bsonTime(d.LastInteraction),
			LastMessage:       d.LastMessage,
			TotalInteractions: d.TotalInteractions,
			Username:          d.Username,
		}
	}
	if stats.LastActive == nil && stats.Details != nil {
		stats.LastActive = stats.Details.LastInteraction
	}
	return stats
}

// bsonTime reads a timestamp stored as a BSON date or an ISO string.
func bsonTime(v any) *time.Time {
	var t time.Time
	switch val := v.(type) {
	case primitive.DateTime:
		t = val.Time()
	case time.Time:
		t = val
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			// bot versions that used datetime.isoformat() omit the zone
			parsed, err = time.Parse("2006-01-02T15:04:05.999999999", val)
			if err != nil {
				return nil
			}
		}
		t = parsed
	default:
		return nil
	}
	t = t.UTC()
	return &t
}
