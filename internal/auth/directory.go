package auth

import (
	"context"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=directory_mocks_test.go -package=auth_test

// Directory maps user ids to display names.
type Directory interface {
	SetDisplayName(ctx context.Context, userID, displayName string) error
	// DisplayNames returns names for the ids it knows, unknown ids are left out.
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

var _ Directory = (*CachedDirectory)(nil)

// CachedDirectory fronts a Directory with an in-process freecache.
// Writes of an unchanged name never reach the backing directory.
type CachedDirectory struct {
	backing Directory
	cache   *freecache.Cache
	ttl     time.Duration
}

func NewCachedDirectory(backing Directory, sizeMB int, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		backing: backing,
		cache:   freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:     ttl,
	}
}

func (d *CachedDirectory) SetDisplayName(ctx context.Context, userID, displayName string) error {
	if displayName == "" {
		return nil
	}
	if cached, err := d.cache.Get([]byte(userID)); err == nil && pkg.BytesToString(cached) == displayName {
		return nil
	}

	if err := d.backing.SetDisplayName(ctx, userID, displayName); err != nil {
		return err
	}
	d.put(userID, displayName)
	return nil
}

func (d *CachedDirectory) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	var missing []string
	for _, id := range userIDs {
		if cached, err := d.cache.Get([]byte(id)); err == nil {
			names[id] = string(cached)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return names, nil
	}

	fetched, err := d.backing.DisplayNames(ctx, missing)
	if err != nil {
		return names, err
	}
	for id, name := range fetched {
		names[id] = name
		d.put(id, name)
	}
	return names, nil
}

func (d *CachedDirectory) put(userID, displayName string) {
	if err := d.cache.Set([]byte(userID), []byte(displayName), int(d.ttl.Seconds())); err != nil {
		log.Warnf("name cache set %s: %s", userID, err)
	}
}
