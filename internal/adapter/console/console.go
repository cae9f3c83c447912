package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/core/service"
	"github.com/pmarket/parfume-desk/internal/port"
)

// Handler drives the interactive session: it collects trimmed input values,
// dispatches to the services and prints result rows. Business failures are
// reported and the menu continues; infrastructure errors abort the session.
type Handler struct {
	auth    *service.AuthService
	deals   *service.DealService
	stats   *service.StatsService
	archive *service.ArchiveService
	reports *service.ReportService
	catalog *service.CatalogService

	in  *bufio.Reader
	out io.Writer
	log zerolog.Logger

	maxLoginAttempts int
}

type Services struct {
	Auth    *service.AuthService
	Deals   *service.DealService
	Stats   *service.StatsService
	Archive *service.ArchiveService
	Reports *service.ReportService
	Catalog *service.CatalogService
}

func New(svcs Services, in io.Reader, out io.Writer, maxLoginAttempts int, log zerolog.Logger) *Handler {
	return &Handler{
		auth:             svcs.Auth,
		deals:            svcs.Deals,
		stats:            svcs.Stats,
		archive:          svcs.Archive,
		reports:          svcs.Reports,
		catalog:          svcs.Catalog,
		in:               bufio.NewReader(in),
		out:              out,
		log:              log.With().Str("component", "console").Logger(),
		maxLoginAttempts: maxLoginAttempts,
	}
}

// Run authenticates the user and enters the role menu. It returns nil on a
// normal exit and an error only for infrastructure failures.
func (h *Handler) Run(ctx context.Context) error {
	session, err := h.login(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		fmt.Fprintln(h.out, "Too many failed login attempts.")
		return nil
	}

	switch session.Role {
	case domain.RoleAdmin:
		return h.adminMenu(ctx, *session)
	case domain.RoleBroker:
		return h.brokerMenu(ctx, *session)
	default:
		return fmt.Errorf("unknown role %q", session.Role)
	}
}

func (h *Handler) login(ctx context.Context) (*domain.UserSession, error) {
	for attempt := 1; attempt <= h.maxLoginAttempts; attempt++ {
		fmt.Fprintf(h.out, "\n--- Login (attempt %d of %d) ---\n", attempt, h.maxLoginAttempts)
		username := h.readLine("Username: ")
		password := []byte(h.readLine("Password: "))

		session, err := h.auth.Login(ctx, username, password)
		if err == nil {
			return &session, nil
		}
		if errors.Is(err, domain.ErrBadCredentials) || errors.Is(err, domain.ErrInvalidInput) {
			fmt.Fprintln(h.out, "Invalid username or password.")
			continue
		}
		return nil, err
	}
	return nil, nil
}

func (h *Handler) adminMenu(ctx context.Context, session domain.UserSession) error {
	for {
		fmt.Fprintf(h.out, `
=== Admin menu (%s) ===
--- Reports ---
 1. Sales summary by period
 2. Buyers by good (optional filter)
 3. Most popular good type
 4. Top broker by deal count
 5. Brokers by supplier (optional filter)
 6. Deals on a date
--- Data management ---
 10. Add broker
 11. Add good
 12. Record deal
 13. Update good price
 14. Delete deal by id
 15. Add supplier
 16. Add buyer
 17. Add user account
 18. Show good stock
--- Maintenance ---
 20. Recalculate broker stats
 21. Show broker stats
 22. Archive deals up to date
---------------------------
 0. Exit
`, session.Username)

		choice := h.readInt("Your choice: ")

		var err error
		switch choice {
		case 1:
			err = h.reports.SalesSummaryByPeriod(ctx,
				h.readLine("Start date (YYYY-MM-DD): "),
				h.readLine("End date (YYYY-MM-DD): "), h.sink())
		case 2:
			err = h.reports.BuyersByGood(ctx,
				h.readLine("Good name (empty for all): "), h.sink())
		case 3:
			err = h.reports.MostPopularTypeInfo(ctx, h.sink())
		case 4:
			err = h.reports.TopBrokerInfo(ctx, h.sink())
		case 5:
			err = h.reports.SupplierBrokerBreakdown(ctx,
				h.readLine("Supplier name (empty for all): "), h.sink())
		case 6:
			err = h.reports.DealsOnDate(ctx, h.readLine("Date (YYYY-MM-DD): "), h.sink())
		case 10:
			err = h.addBroker(ctx)
		case 11:
			err = h.addGood(ctx)
		case 12:
			err = h.recordDeal(ctx)
		case 13:
			err = h.updateGoodPrice(ctx)
		case 14:
			err = h.deals.DeleteDeal(ctx, h.readLine("Deal id: "))
			if err == nil {
				fmt.Fprintln(h.out, "Deal deleted.")
			}
		case 15:
			err = h.catalog.AddSupplier(ctx, h.readLine("Supplier name: "))
		case 16:
			err = h.catalog.AddBuyer(ctx, h.readLine("Buyer name: "))
		case 17:
			err = h.addUser(ctx)
		case 18:
			err = h.showGood(ctx)
		case 20:
			err = h.stats.Recalculate(ctx)
			if err == nil {
				fmt.Fprintln(h.out, "Broker stats rebuilt.")
			}
		case 21:
			err = h.showBrokerStats(ctx)
		case 22:
			err = h.archiveUpTo(ctx)
		case 0:
			return nil
		default:
			fmt.Fprintln(h.out, "Unknown menu item.")
			continue
		}

		if err := h.report(err); err != nil {
			return err
		}
	}
}

func (h *Handler) brokerMenu(ctx context.Context, session domain.UserSession) error {
	if session.BrokerSurname == "" {
		return fmt.Errorf("broker session without linked broker surname")
	}

	for {
		fmt.Fprintf(h.out, `
=== Broker menu (%s - %s) ===
 1. My deals
 2. Buyers by good
 3. Most popular good type
 4. Record deal (as myself)
---------------------------
 0. Exit
`, session.Username, session.BrokerSurname)

		choice := h.readInt("Your choice: ")

		var err error
		switch choice {
		case 1:
			err = h.reports.BrokerDeals(ctx, session.BrokerSurname, h.sink())
		case 2:
			err = h.reports.BuyersByGood(ctx,
				h.readLine("Good name (empty for all): "), h.sink())
		case 3:
			err = h.reports.MostPopularTypeInfo(ctx, h.sink())
		case 4:
			err = h.recordDealFor(ctx, session.BrokerSurname)
		case 0:
			return nil
		default:
			fmt.Fprintln(h.out, "Unknown menu item.")
			continue
		}

		if err := h.report(err); err != nil {
			return err
		}
	}
}

func (h *Handler) addBroker(ctx context.Context) error {
	err := h.catalog.AddBroker(ctx, domain.Broker{
		Surname:   h.readLine("Broker surname: "),
		Address:   h.readLine("Address: "),
		BirthYear: h.readInt("Birth year: "),
	})
	if err == nil {
		fmt.Fprintln(h.out, "Broker added.")
	}
	return err
}

func (h *Handler) addGood(ctx context.Context) error {
	name := h.readLine("Good name: ")
	typeOfGood := h.readLine("Type of good: ")
	supplier := h.readLine("Supplier: ")
	price, perr := decimal.NewFromString(h.readLine("Unit price: "))
	if perr != nil {
		return fmt.Errorf("%w: price must be a number", domain.ErrInvalidInput)
	}
	quantity := h.readInt("Quantity supplied: ")
	expiry := h.readLine("Expiry date (YYYY-MM-DD, empty if none): ")

	err := h.catalog.AddGood(ctx, domain.Good{
		Name:         name,
		SupplierName: supplier,
		TypeOfGood:   typeOfGood,
		Price:        price,
		Quantity:     quantity,
		ExpiryDate:   expiry,
	})
	if err == nil {
		fmt.Fprintln(h.out, "Good added.")
	}
	return err
}

func (h *Handler) recordDeal(ctx context.Context) error {
	return h.recordDealFor(ctx, h.readLine("Broker surname: "))
}

func (h *Handler) recordDealFor(ctx context.Context, broker string) error {
	in := service.RecordDealInput{
		Date:          h.readLine("Deal date (YYYY-MM-DD): "),
		GoodName:      h.readLine("Good name: "),
		SupplierName:  h.readLine("Supplier: "),
		TypeOfGood:    h.readLine("Type of good: "),
		Quantity:      h.readInt("Quantity sold: "),
		BrokerSurname: broker,
		BuyerName:     h.readLine("Buyer: "),
	}

	deal, err := h.deals.RecordDeal(ctx, in)
	if err == nil {
		fmt.Fprintf(h.out, "Deal %s recorded, stock and stats updated.\n", deal.ID)
	}
	return err
}

func (h *Handler) updateGoodPrice(ctx context.Context) error {
	name := h.readLine("Good name: ")
	supplier := h.readLine("Supplier: ")
	price, perr := decimal.NewFromString(h.readLine("New unit price: "))
	if perr != nil {
		return fmt.Errorf("%w: price must be a number", domain.ErrInvalidInput)
	}

	err := h.catalog.UpdateGoodPrice(ctx, name, supplier, price)
	if err == nil {
		fmt.Fprintln(h.out, "Price updated.")
	}
	return err
}

func (h *Handler) addUser(ctx context.Context) error {
	username := h.readLine("Username: ")
	password := []byte(h.readLine("Password: "))
	role := domain.Role(h.readLine("Role (admin/broker): "))
	var surname string
	if role == domain.RoleBroker {
		surname = h.readLine("Linked broker surname: ")
	}

	err := h.auth.Register(ctx, username, password, role, surname)
	if err == nil {
		fmt.Fprintln(h.out, "User added.")
	}
	return err
}

func (h *Handler) showGood(ctx context.Context) error {
	name := h.readLine("Good name: ")
	supplier := h.readLine("Supplier: ")

	good, err := h.catalog.GetGood(ctx, name, supplier)
	if err != nil {
		return err
	}
	if good == nil {
		fmt.Fprintln(h.out, "No such good.")
		return nil
	}

	expiry := good.ExpiryDate
	if expiry == "" {
		expiry = "none"
	}
	fmt.Fprintf(h.out, "  %s (%s) from %s: price=%s quantity=%d expiry=%s\n",
		good.Name, good.TypeOfGood, good.SupplierName, good.Price.String(), good.Quantity, expiry)
	return nil
}

func (h *Handler) showBrokerStats(ctx context.Context) error {
	stats, err := h.stats.List(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(h.out, "No broker stats recorded.")
		return nil
	}
	for _, st := range stats {
		fmt.Fprintf(h.out, "  %-20s units=%-8d sum=%-12s updated=%s\n",
			st.BrokerSurname, st.TotalSoldUnits, st.TotalDealSum.String(), st.LastUpdated)
	}
	return nil
}

func (h *Handler) archiveUpTo(ctx context.Context) error {
	cutoff := h.readLine("Archive deals up to date (YYYY-MM-DD): ")
	goods, deals, err := h.archive.ArchiveUpTo(ctx, cutoff)
	if err == nil {
		fmt.Fprintf(h.out, "%d goods updated, %d deals purged.\n", goods, deals)
	}
	return err
}

// sink prints each result row the way the desk operators expect: one block
// per row, aligned column names.
func (h *Handler) sink() port.ResultSink {
	return port.ResultSinkFunc(func(columns []string, values []string) error {
		fmt.Fprintln(h.out, "--- row ---")
		for i, col := range columns {
			fmt.Fprintf(h.out, "  %-20s: %s\n", col, values[i])
		}
		return nil
	})
}

// report swallows business failures (printing a message) and passes
// infrastructure errors through, which ends the session.
func (h *Handler) report(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		fmt.Fprintln(h.out, "Deal rejected: not enough stock, or no such good.")
	case errors.Is(err, domain.ErrReferenceNotFound):
		fmt.Fprintln(h.out, "Deal rejected: broker, buyer or good does not exist.")
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintln(h.out, "Nothing matched:", err)
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintln(h.out, "Invalid input:", err)
	case errors.Is(err, domain.ErrConstraint):
		fmt.Fprintln(h.out, "Rejected by a data constraint:", err)
	default:
		h.log.Error().Err(err).Msg("operation failed")
		return err
	}
	return nil
}

func (h *Handler) readLine(prompt string) string {
	fmt.Fprint(h.out, prompt)
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (h *Handler) readInt(prompt string) int {
	for {
		raw := h.readLine(prompt)
		if raw == "" {
			return 0
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(h.out, "Please enter a number.")
			continue
		}
		return value
	}
}
