package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/riot"
)

// LoLData is the persisted game side of a profile.
type LoLData struct {
	RiotID    string                 `json:"riotId"`
	Region    riot.Region            `json:"region"`
	PUUID     string                 `json:"puuid"`
	IconID    int                    `json:"iconId"`
	Standings aggregator.Standings   `json:"rangos"`
	Roles     []aggregator.RoleShare `json:"rolesPrincipales,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func LoLDataFromProfile(p *aggregator.PlayerProfile, now time.Time) *LoLData {
	return &LoLData{
		RiotID:    p.Identity.RiotID(),
		Region:    p.Identity.Region,
		PUUID:     string(p.Handle),
		IconID:    p.IconID,
		Standings: p.Standings,
		Roles:     p.Roles,
		UpdatedAt: now,
	}
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// Personalization holds only what the user chose; defaults are applied by Merge.
type Personalization struct {
	FavoriteChampion string      `json:"campeonFavorito,omitempty"`
	Club             string      `json:"club,omitempty"`
	ClubBadge        string      `json:"clubEmoji,omitempty"`
	Role             string      `json:"puesto,omitempty"`
	PartnerID        string      `json:"pareja,omitempty"`
	Bio              string      `json:"biografia,omitempty"`
	SocialLinks      SocialLinks `json:"redesSociales"`
	CustomColor      string      `json:"colorPersonalizado,omitempty"`
	ThumbnailURL     string      `json:"thumbnailUrl,omitempty"`
}

type Documents interface {
	ReadDocument(ctx context.Context, key string, v interface{}) error
	WriteDocument(ctx context.Context, key string, v interface{}) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func lolKey(userID string) string {
	return "lol/" + userID
}

func personalizationKey(userID string) string {
	return "personalizacion/" + userID
}

// Repository reads and writes whole profile documents.
type Repository struct {
	docs   Documents
	locker Locker
}

func NewRepository(docs Documents, locker Locker) *Repository {
	return &Repository{docs: docs, locker: locker}
}

// LoL returns nil when the user has no document yet.
func (r *Repository) LoL(ctx context.Context, userID string) (*LoLData, error) {
	var data LoLData
	if err := r.docs.ReadDocument(ctx, lolKey(userID), &data); err != nil {
		return nil, fmt.Errorf("read lol document: %w", err)
	}
	if data.RiotID == "" {
		return nil, nil
	}
	return &data, nil
}

func (r *Repository) SaveLoL(ctx context.Context, userID string, data *LoLData) error {
	if err := r.docs.WriteDocument(ctx, lolKey(userID), data); err != nil {
		return fmt.Errorf("write lol document: %w", err)
	}
	return nil
}

// UpdateLoL applies fn to the stored document, or to a zero one.
func (r *Repository) UpdateLoL(ctx context.Context, userID string, fn func(*LoLData)) error {
	unlock, err := r.locker.Lock(ctx, "profile:lol:"+userID)
	if err != nil {
		return err
	}
	defer unlock()

	var data LoLData
	if err := r.docs.ReadDocument(ctx, lolKey(userID), &data); err != nil {
		return fmt.Errorf("read lol document: %w", err)
	}
	fn(&data)
	return r.SaveLoL(ctx, userID, &data)
}

func (r *Repository) Personalization(ctx context.Context, userID string) (*Personalization, error) {
	var p Personalization
	if err := r.docs.ReadDocument(ctx, personalizationKey(userID), &p); err != nil {
		return nil, fmt.Errorf("read personalization document: %w", err)
	}
	return &p, nil
}

func (r *Repository) UpdatePersonalization(ctx context.Context, userID string, fn func(*Personalization)) error {
	unlock, err := r.locker.Lock(ctx, "profile:personalization:"+userID)
	if err != nil {
		return err
	}
	defer unlock()

	p, err := r.Personalization(ctx, userID)
	if err != nil {
		return err
	}
	fn(p)
	if err := r.docs.WriteDocument(ctx, personalizationKey(userID), p); err != nil {
		return fmt.Errorf("write personalization document: %w", err)
	}
	return nil
}
