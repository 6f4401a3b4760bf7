package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// GameScore represents one score achieved by one user in one named game.
type GameScore struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index"`
	GameName string `gorm:"not null"`
	Score    int    `gorm:"not null"`
}

func (c *Client) CreateGameScore(ctx context.Context, userID uint, gameName string, score int) (*GameScore, error) {
	gameScore := GameScore{
		UserID:   userID,
		GameName: gameName,
		Score:    score,
	}
	if err := c.db.WithContext(ctx).Create(&gameScore).Error; err != nil {
		log.Error("failed to create game score", "error", err)
		return nil, err
	}
	return &gameScore, nil
}

func (c *Client) GetGameScoresByUser(ctx context.Context, userID uint) ([]GameScore, error) {
	var scores []GameScore
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Find(&scores).Error; err != nil {
		log.Error("failed to get game scores", "error", err)
		return nil, err
	}
	return scores, nil
}

// DeleteGameScore deletes a score owned by the given user. The owner is part
// of the delete predicate, so a score belonging to another user behaves like
// a missing one.
func (c *Client) DeleteGameScore(ctx context.Context, id, userID uint) error {
	res := c.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&GameScore{})
	if res.Error != nil {
		log.Error("failed to delete game score", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrScoreNotFound
	}
	return nil
}

func (c *Client) CountGameScores(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&GameScore{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
