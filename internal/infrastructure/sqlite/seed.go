package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type seedMenuItem struct {
	name        string
	description string
	price       float64
	category    string
	imageURL    string
}

var starterMenu = []seedMenuItem{
	{"Classic Burger", "Juicy beef patty with lettuce, tomato, and special sauce", 12.99, "Burgers", "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400"},
	{"Cheeseburger Deluxe", "Double beef patty with cheddar cheese, bacon, and caramelized onions", 15.99, "Burgers", "https://images.unsplash.com/photo-1550547660-d9450f859349?w=400"},
	{"Veggie Burger", "Plant-based patty with avocado, sprouts, and chipotle mayo", 11.99, "Burgers", "https://images.unsplash.com/photo-1520072959219-c595dc870360?w=400"},
	{"Margherita Pizza", "Fresh mozzarella, basil, and tomato sauce on thin crust", 14.99, "Pizza", "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=400"},
	{"Pepperoni Pizza", "Classic pepperoni with mozzarella and marinara", 16.99, "Pizza", "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=400"},
	{"BBQ Chicken Pizza", "Grilled chicken, BBQ sauce, red onions, and cilantro", 17.99, "Pizza", "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=400"},
	{"Caesar Salad", "Romaine lettuce, parmesan, croutons, and Caesar dressing", 9.99, "Salads", "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=400"},
	{"Greek Salad", "Tomatoes, cucumbers, olives, feta cheese, and olive oil", 10.99, "Salads", "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?w=400"},
	{"French Fries", "Crispy golden fries with sea salt", 4.99, "Sides", "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?w=400"},
	{"Onion Rings", "Beer-battered onion rings with ranch dip", 5.99, "Sides", "https://images.unsplash.com/photo-1639024471283-03518883512d?w=400"},
	{"Coca Cola", "Classic Coca Cola (330ml)", 2.99, "Drinks", "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=400"},
	{"Fresh Lemonade", "Homemade lemonade with mint", 3.99, "Drinks", "https://images.unsplash.com/photo-1523677011781-c91d1bbe2f9d?w=400"},
}

// Seed inserts the default admin user and the starter menu when the
// corresponding tables are empty. It is safe to call on every start.
func Seed(ctx context.Context, db *sql.DB) error {
	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	return seedMenu(ctx, db)
}

func seedAdminUser(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, defaultAdminUsername).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`,
		defaultAdminUsername, string(hash), "admin")
	if err != nil {
		return fmt.Errorf("inserting admin user: %w", err)
	}

	return nil
}

func seedMenu(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return fmt.Errorf("checking menu items: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO menu_items (name, description, price, category, image_url) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing menu seed: %w", err)
	}
	defer stmt.Close()

	for _, item := range starterMenu {
		if _, err := stmt.ExecContext(ctx, item.name, item.description, item.price, item.category, item.imageURL); err != nil {
			return fmt.Errorf("seeding menu item %q: %w", item.name, err)
		}
	}

	return tx.Commit()
}
