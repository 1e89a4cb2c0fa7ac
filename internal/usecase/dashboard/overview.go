package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/dto"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/timezone"
)

const (
	revenueMonths    = 6
	orderDays        = 7
	activityWindow   = 7 * 24 * time.Hour
	activityPerKind  = 5
	activityShown    = 3
	ordersPerProduct = 10
	ordersPerSignup  = 5
	dailyOrderFactor = 2
)

const EstimateBasis = "revenue = sum(price * stock) over the catalog; " +
	"orders = max(products * 10, customers * 5); " +
	"revenue_by_month buckets products by creation month; " +
	"orders_by_week = customer sign-ups per day * 2"

type Counts struct {
	Users     int64
	Admins    int64
	Customers int64
	Products  int64
}

type Repository interface {
	Counts(ctx context.Context) (Counts, error)
	// Products returns id, name, price, stock and created_at, newest first.
	Products(ctx context.Context) ([]models.Product, error)
	// UsersCreatedSince is ordered newest first.
	UsersCreatedSince(ctx context.Context, since time.Time) ([]models.User, error)
}

// ======================================================
// USE CASE
// ======================================================

type Overview struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewOverview(repo Repository, loc *time.Location) *Overview {
	return &Overview{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (uc *Overview) Execute(ctx context.Context) (*dto.DashboardDTO, error) {
	now := uc.now().In(uc.loc)

	counts, err := uc.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	products, err := uc.repo.Products(ctx)
	if err != nil {
		return nil, err
	}

	today := timezone.StartOfDay(now)
	since := today.AddDate(0, 0, -(orderDays - 1))
	if cutoff := now.Add(-activityWindow); cutoff.Before(since) {
		since = cutoff
	}

	users, err := uc.repo.UsersCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardDTO{
		TotalUsers:      counts.Users,
		TotalAdmins:     counts.Admins,
		TotalCustomers:  counts.Customers,
		TotalProducts:   counts.Products,
		EstimatedOrders: max(counts.Products*ordersPerProduct, counts.Customers*ordersPerSignup),
		EstimateBasis:   EstimateBasis,
	}

	out.EstimatedRevenue = totalRevenue(products)
	out.EstimatedRevenueByMonth, out.RevenueMonthLabels = revenueByMonth(products, now)
	out.EstimatedOrdersByDay, out.OrderDayLabels = ordersByDay(users, today)
	out.RecentActivities = recentActivities(users, products, now.Add(-activityWindow))

	return out, nil
}

// ======================================================
// Heuristics
// ======================================================

func stockValue(p models.Product) decimal.Decimal {
	if p.Stock == nil {
		return decimal.Zero
	}
	return p.Price.Mul(decimal.NewFromInt(int64(*p.Stock)))
}

func totalRevenue(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(stockValue(p))
	}
	return total.Round(2)
}

// revenueByMonth covers the current calendar month and the five before it,
// oldest first.
func revenueByMonth(products []models.Product, now time.Time) ([]decimal.Decimal, []string) {
	first := timezone.StartOfMonth(now).AddDate(0, -(revenueMonths - 1), 0)

	values := make([]decimal.Decimal, revenueMonths)
	labels := make([]string, revenueMonths)
	for i := range values {
		values[i] = decimal.Zero
		labels[i] = first.AddDate(0, i, 0).Format("Jan")
	}

	for _, p := range products {
		t := p.CreatedAt.In(now.Location())
		idx := (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
		if idx < 0 || idx >= revenueMonths {
			continue
		}
		values[idx] = values[idx].Add(stockValue(p))
	}

	for i := range values {
		values[i] = values[i].Round(2)
	}
	return values, labels
}

// ordersByDay covers the last seven calendar days with today last.
func ordersByDay(users []models.User, today time.Time) ([]int64, []string) {
	values := make([]int64, orderDays)
	labels := make([]string, orderDays)
	index := make(map[string]int, orderDays)

	for i := 0; i < orderDays; i++ {
		day := today.AddDate(0, 0, i-(orderDays-1))
		labels[i] = day.Format("Mon")
		index[day.Format(time.DateOnly)] = i
	}

	for _, u := range users {
		if !account.IsCustomer(u.Role) {
			continue
		}
		key := u.CreatedAt.In(today.Location()).Format(time.DateOnly)
		if i, ok := index[key]; ok {
			values[i] += dailyOrderFactor
		}
	}
	return values, labels
}

func recentActivities(users []models.User, products []models.Product, cutoff time.Time) []dto.ActivityDTO {
	activities := make([]dto.ActivityDTO, 0, 2*activityPerKind)

	n := 0
	for _, u := range users {
		if n == activityPerKind {
			break
		}
		if u.CreatedAt.Before(cutoff) {
			continue
		}
		action := "Admin joined"
		if account.IsCustomer(u.Role) {
			action = "Created an account"
		}
		activities = append(activities, dto.ActivityDTO{
			Name:      u.Username,
			Action:    action,
			Type:      "user",
			CreatedAt: u.CreatedAt,
		})
		n++
	}

	n = 0
	for _, p := range products {
		if n == activityPerKind {
			break
		}
		if p.CreatedAt.Before(cutoff) {
			continue
		}
		activities = append(activities, dto.ActivityDTO{
			Name:      p.Name,
			Action:    "Product added",
			Type:      "product",
			CreatedAt: p.CreatedAt,
		})
		n++
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})

	if len(activities) > activityShown {
		activities = activities[:activityShown]
	}
	return activities
}
