package model

import "time"

// Badge is a catalog entry members can earn.
type Badge struct {
	ID          uint64    // badges.id
	Slug        string    // badges.slug
	Title       string    // badges.title
	Description string    // badges.description
	IconURL     string    // badges.icon_url
	CreatedAt   time.Time // badges.created_at
}

// UserBadge grants a badge to a member.
type UserBadge struct {
	ID        uint64    // user_badges.id
	UserID    uint64    // user_badges.user_id
	BadgeID   uint64    // user_badges.badge_id
	GrantedAt time.Time // user_badges.granted_at
}
