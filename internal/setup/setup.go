package setup

import (
	"github.com/corkboard-dev/corkboard/internal/config"
	"github.com/corkboard-dev/corkboard/internal/handler"
	"github.com/corkboard-dev/corkboard/internal/markdown"
	"github.com/corkboard-dev/corkboard/internal/service"
	"github.com/corkboard-dev/corkboard/internal/storage/pg"
	"github.com/corkboard-dev/corkboard/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	board := service.NewBoard(storage, &utils.BoardValidator{}, cfg.Public.DefaultSections)
	entry := service.NewEntry(storage, &utils.EntryTextValidator{MaxLen: cfg.Public.MaxEntryTextLen})

	h := handler.New(board, entry, markdown.New(), storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Config:  cfg,
	}, nil
}
