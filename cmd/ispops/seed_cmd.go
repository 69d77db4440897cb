package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/store"
)

// seedFixture is the YAML shape consumed by `ispops seed`. Tickets reference
// clients by document number; the generated client ID is resolved during the
// run.
type seedFixture struct {
	Clients []struct {
		Name     string  `yaml:"name"`
		Document string  `yaml:"document"`
		Phone    string  `yaml:"phone"`
		Email    string  `yaml:"email"`
		Address  string  `yaml:"address"`
		PlanID   string  `yaml:"plan_id"`
		Lat      float64 `yaml:"latitude"`
		Lng      float64 `yaml:"longitude"`
	} `yaml:"clients"`

	Equipment []struct {
		Serial string `yaml:"serial"`
		MAC    string `yaml:"mac"`
		Model  string `yaml:"model"`
	} `yaml:"equipment"`

	Tickets []struct {
		ClientDocument string `yaml:"client_document"`
		Category       string `yaml:"category"`
		Subcategory    string `yaml:"subcategory"`
		Priority       string `yaml:"priority"`
		Description    string `yaml:"description"`
	} `yaml:"tickets"`
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Populate the store from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var fixture seedFixture
			if err := yaml.Unmarshal(data, &fixture); err != nil {
				return fmt.Errorf("decode fixture: %w", err)
			}

			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			st := store.New(env.kv, env.logger, store.Options{})
			if err := st.Load(cmd.Context()); err != nil {
				return err
			}

			clientsByDoc := make(map[string]string, len(fixture.Clients))
			for _, c := range fixture.Clients {
				created := st.Clients.Add(domain.Client{
					Name:      c.Name,
					Document:  c.Document,
					Phone:     c.Phone,
					Email:     c.Email,
					Address:   c.Address,
					PlanID:    c.PlanID,
					Latitude:  c.Lat,
					Longitude: c.Lng,
					Status:    domain.ClientStatusActive,
				})
				clientsByDoc[c.Document] = created.ID
			}

			for _, e := range fixture.Equipment {
				st.Equipment.Add(domain.Equipment{
					Serial: e.Serial,
					MAC:    e.MAC,
					Model:  e.Model,
					Status: domain.EquipmentStatusAvailable,
				})
			}

			for _, t := range fixture.Tickets {
				clientID, ok := clientsByDoc[t.ClientDocument]
				if !ok {
					return fmt.Errorf("ticket references unknown client document %q", t.ClientDocument)
				}
				priority := domain.TicketPriority(t.Priority)
				if priority == "" {
					priority = domain.TicketPriorityMedium
				}
				st.Tickets.Add(domain.Ticket{
					ClientID:    clientID,
					Category:    t.Category,
					Subcategory: t.Subcategory,
					Priority:    priority,
					Status:      domain.TicketStatusOpen,
					Description: t.Description,
				})
			}

			st.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d clients, %d equipment, %d tickets\n",
				len(fixture.Clients), len(fixture.Equipment), len(fixture.Tickets))
			return nil
		},
	}
	return cmd
}
