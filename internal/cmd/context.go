package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
	"github.com/jobradar/jobradar/internal/store"
	"github.com/jobradar/jobradar/internal/ui"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

// openStore opens the configured database.
func (c *Context) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, c.Config.DatabasePath)
}

// buildRegistry layers the persisted user sources over the builtins.
func buildRegistry(ctx context.Context, st *store.Store) (*source.Registry, error) {
	var user []models.EmailSource
	if st != nil {
		var err error
		user, err = st.ListSources(ctx)
		if err != nil {
			return nil, err
		}
	}
	return source.NewRegistry(user)
}
