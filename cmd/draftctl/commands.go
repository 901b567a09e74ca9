package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/vendas-api/internal/application/draft"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/infrastructure/kv"
)

// opener abre el backend de borradores y devuelve su función de cierre.
type opener func(ctx context.Context) (*kv.Backend, func(), error)

type cli struct {
	open opener
	log  zerolog.Logger
	out  io.Writer
	now  func() time.Time
}

func newRootCmd(open opener, log zerolog.Logger, out io.Writer) *cobra.Command {
	c := &cli{open: open, log: log, out: out, now: time.Now}

	root := &cobra.Command{
		Use:   "draftctl",
		Short: "Administra los borradores del asistente de venta",
		Long: `Inspecciona y administra los borradores guardados por el asistente de venta.

Subcomandos:
  info       - resumen del borrador recuperable del usuario
  show       - borrador completo en JSON
  deactivate - marca el borrador como no recuperable (is_active=false)
  clear      - borra el borrador`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(
		&cobra.Command{
			Use:   "info <user-id>",
			Short: "Resumen del borrador recuperable",
			Args:  cobra.ExactArgs(1),
			RunE:  c.withManager(c.runInfo),
		},
		&cobra.Command{
			Use:   "show <user-id>",
			Short: "Borrador completo en JSON",
			Args:  cobra.ExactArgs(1),
			RunE:  c.withManager(c.runShow),
		},
		&cobra.Command{
			Use:   "deactivate <user-id>",
			Short: "Marca el borrador como no recuperable",
			Args:  cobra.ExactArgs(1),
			RunE: c.withManager(func(cmd *cobra.Command, m *draft.Manager) error {
				m.DeactivateDraft(cmd.Context())
				fmt.Fprintf(c.out, "borrador %s desactivado\n", m.Key())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear <user-id>",
			Short: "Borra el borrador",
			Args:  cobra.ExactArgs(1),
			RunE: c.withManager(func(cmd *cobra.Command, m *draft.Manager) error {
				m.ClearDraft(cmd.Context())
				fmt.Fprintf(c.out, "borrador %s eliminado\n", m.Key())
				return nil
			}),
		},
	)
	return root
}

// withManager abre el backend y arma el gestor del borrador del usuario args[0].
func (c *cli) withManager(run func(cmd *cobra.Command, m *draft.Manager) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
			cmd.SetContext(ctx)
		}
		backend, closeFn, err := c.open(ctx)
		if err != nil {
			return fmt.Errorf("abrir almacenamiento: %w", err)
		}
		defer closeFn()

		store := draft.NewStore[entity.SaleDraft](backend.Repo, c.log, nil)
		return run(cmd, draft.NewManager(store, draft.KeyFor(args[0]), draft.WithClock(c.now)))
	}
}

func (c *cli) runInfo(cmd *cobra.Command, m *draft.Manager) error {
	info := m.GetDraftInfo(cmd.Context())
	if info == nil {
		fmt.Fprintf(c.out, "%s: sin borrador recuperable\n", m.Key())
		return nil
	}
	fmt.Fprintf(c.out, "%s\n  paso:     %d (%s)\n  cliente:  %s\n  itens:    %d\n  guardado: %s (%s)\n",
		m.Key(), info.Step, info.StepName, info.CustomerName, info.TotalItemCount,
		info.LastSavedFormatted, info.RelativeAge)
	return nil
}

func (c *cli) runShow(cmd *cobra.Command, m *draft.Manager) error {
	d := m.LoadDraft(cmd.Context())
	if d == nil {
		return fmt.Errorf("%s: sin borrador", m.Key())
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
