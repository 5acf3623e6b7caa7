package crate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osse101/CrateBot_Go/configs"
	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/repository"
	"github.com/osse101/CrateBot_Go/internal/validation"
)

// Sentinel errors for the crates loader
var (
	ErrDuplicateCrate = errors.New("duplicate crate name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the JSON configuration of crates and tags
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Tags   []TagDef   `json:"tags"`
	Crates []CrateDef `json:"crates"`
}

// TagDef is a tag definition
type TagDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CrateDef is a crate definition
type CrateDef struct {
	Name   string     `json:"name"`
	Key    string     `json:"key"`
	Size   int        `json:"size"`
	Prizes []PrizeDef `json:"prizes"`
}

// PrizeDef is a prize definition. Skin defaults to the item.
type PrizeDef struct {
	Slot   int               `json:"slot"`
	Item   domain.ItemStack  `json:"item"`
	Skin   *domain.ItemStack `json:"skin,omitempty"`
	Chance float64           `json:"chance"`
	Rarity bool              `json:"rarity"`
	Tags   []string          `json:"tags"`
}

// Loader handles loading, validating and syncing the crates configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Crate, configPath string) (*SyncResult, error)
}

// SyncResult contains the result of syncing crates to the database
type SyncResult struct {
	TagsSynced   int
	CratesSynced int
	PrizesSynced int
	Skipped      bool
}

type crateLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &crateLoader{
		schemaValidator: validation.NewSchemaValidator(configs.Schemas),
	}
}

// Load reads, schema-checks and parses a crates JSON file
func (l *crateLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, configs.CratesSchema); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	return &config, nil
}

// Validate checks the cross-references a schema cannot express
func (l *crateLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	tags := make(map[string]bool, len(config.Tags))
	for _, t := range config.Tags {
		if tags[t.Name] {
			return fmt.Errorf(ErrFmtDuplicateTag, ErrInvalidConfig, t.Name)
		}
		tags[t.Name] = true
	}

	names := make(map[string]bool, len(config.Crates))
	for i := range config.Crates {
		c := &config.Crates[i]
		if c.Name == "" {
			return fmt.Errorf(ErrFmtCrateAtIndexEmpty, ErrInvalidConfig, i)
		}
		if names[c.Name] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateCrate, c.Name)
		}
		names[c.Name] = true

		if err := validatePrizes(c, tags); err != nil {
			return err
		}
	}
	return nil
}

func validatePrizes(c *CrateDef, tags map[string]bool) error {
	slots := make(map[int]bool, len(c.Prizes))
	for _, p := range c.Prizes {
		if p.Slot < 0 || (c.Size > 0 && p.Slot >= c.Size) {
			return fmt.Errorf(ErrFmtSlotOutOfRange, ErrInvalidConfig, c.Name, p.Slot, c.Size)
		}
		if slots[p.Slot] {
			return fmt.Errorf(ErrFmtDuplicateSlot, ErrInvalidConfig, c.Name, p.Slot)
		}
		slots[p.Slot] = true

		if p.Chance < 0 || p.Chance > 100 {
			return fmt.Errorf(ErrFmtChanceOutOfRange, ErrInvalidConfig, c.Name, p.Slot, p.Chance)
		}
		for _, t := range p.Tags {
			if !tags[t] {
				return fmt.Errorf(ErrFmtUnknownTag, ErrInvalidConfig, c.Name, p.Slot, t)
			}
		}
	}
	return nil
}

// SyncToDatabase upserts tags then crates. Crates absent from the file are left untouched.
func (l *crateLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Crate, configPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	fileHash, modTime, err := fingerprint(configPath)
	if err != nil {
		return nil, err
	}

	changed, err := hasFileChanged(ctx, repo, fileHash, modTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFileChangeFailed, err)
	}
	if !changed {
		log.Info(LogMsgConfigUnchanged, "path", configPath)
		return &SyncResult{Skipped: true}, nil
	}

	descriptions := make(map[string]string, len(config.Tags))
	result := &SyncResult{}
	for _, t := range config.Tags {
		if err := repo.UpsertTag(ctx, domain.Tag{Name: t.Name, Description: t.Description}); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertTagFailed, t.Name, err)
		}
		descriptions[t.Name] = t.Description
		result.TagsSynced++
	}

	for _, def := range config.Crates {
		c := toDomain(def, descriptions)
		if err := repo.UpsertCrate(ctx, c); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertCrateFailed, def.Name, err)
		}
		result.CratesSynced++
		result.PrizesSynced += len(c.Prizes)
		log.Debug(LogMsgSyncedCrate, "crate", c.Name, "prizes", len(c.Prizes))
	}

	err = repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   ConfigFileName,
		LastSyncTime: time.Now(),
		FileHash:     fileHash,
		FileModTime:  modTime,
	})
	if err != nil {
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	log.Info(LogMsgSyncCompleted,
		"tags", result.TagsSynced,
		"crates", result.CratesSynced,
		"prizes", result.PrizesSynced)
	return result, nil
}

func toDomain(def CrateDef, descriptions map[string]string) *domain.Crate {
	c := &domain.Crate{
		Name:    def.Name,
		KeyName: def.Key,
		Size:    def.Size,
		Prizes:  make([]*domain.Prize, 0, len(def.Prizes)),
	}
	for _, p := range def.Prizes {
		item := p.Item.Clone(p.Item.Amount)
		if item.Amount == 0 {
			item.Amount = 1
		}
		skin := item.Clone(item.Amount)
		if p.Skin != nil {
			skin = p.Skin.Clone(max(p.Skin.Amount, 1))
		}

		prize := domain.NewPrize(item, skin, p.Slot, p.Chance)
		prize.Rarity = p.Rarity
		for _, name := range p.Tags {
			prize.Tags = append(prize.Tags, domain.Tag{Name: name, Description: descriptions[name]})
		}
		c.Prizes = append(c.Prizes, prize)
	}
	return c
}

// fingerprint returns the sha256 and modification time of the config file
func fingerprint(configPath string) (string, time.Time, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), info.ModTime(), nil
}

// hasFileChanged compares the file against the last recorded sync
func hasFileChanged(ctx context.Context, repo repository.Crate, fileHash string, modTime time.Time) (bool, error) {
	meta, err := repo.GetSyncMetadata(ctx, ConfigFileName)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return true, nil
	}
	return meta.FileHash != fileHash || !meta.FileModTime.Equal(modTime), nil
}
