package main

import (
	"context"
	"fmt"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"

	"github.com/spf13/cobra"
)

type seriesGetter interface {
	GetSeries(ctx context.Context, currency, start, end string) (application.Series, error)
	DefaultRange(days int) domain.DateRange
}

type currencyLister interface {
	ListCurrencies(ctx context.Context) ([]string, error)
}

type services struct {
	rates      seriesGetter
	currencies currencyLister
}

// loader opens the store and clients. It runs only once a subcommand is
// about to execute, so --help and usage errors never touch the store.
type loader func(ctx context.Context) (services, error)

func newRootCmd(load loader) *cobra.Command {
	svc := &services{}
	root := &cobra.Command{
		Use:           "nbprates",
		Short:         "NBP table A exchange rates against PLN, cached locally",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}
			*svc = s
			return nil
		},
	}
	root.AddCommand(ratesCmd(svc), currenciesCmd(svc))
	return root
}

func ratesCmd(svc *services) *cobra.Command {
	var currency, start, end string
	var days int
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the mid-rate series for a currency and date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start == "" || end == "" {
				def := svc.rates.DefaultRange(days)
				if start == "" {
					start = def.Start.Format(domain.DateLayout)
				}
				if end == "" {
					end = def.End.Format(domain.DateLayout)
				}
			}
			s, err := svc.rates.GetSeries(cmd.Context(), currency, start, end)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s/PLN %s\n", s.Currency, s.Range)
			for _, p := range s.Points {
				fmt.Fprintf(out, "%s\t%s\n", p.Date.Format(domain.DateLayout), p.Rate.String())
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&currency, "currency", "c", "USD", "currency code (table A)")
	f.StringVar(&start, "start", "", "start date YYYY-MM-DD")
	f.StringVar(&end, "end", "", "end date YYYY-MM-DD (default yesterday)")
	f.IntVar(&days, "days", 30, "span in days when start or end is omitted")
	return cmd
}

func currenciesCmd(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List currency codes available in table A",
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := svc.currencies.ListCurrencies(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range codes {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
