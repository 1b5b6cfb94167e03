package listing

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository stores a catalog in SQLite so it can be served without
// rebuilding the binary.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO listings
	(id, position, title, description, price, address, city, state, zip_code, lat, lng,
	 bedrooms, bathrooms, square_feet, year_built, property_type, images, amenities, status, featured)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `id, title, description, price, address, city, state, zip_code, lat, lng,
	bedrooms, bathrooms, square_feet, year_built, property_type, images, amenities, status, featured`

// ReplaceAll swaps the stored catalog for listings in a single transaction,
// keeping their order.
func (r *Repository) ReplaceAll(listings []*Listing) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("clearing listings: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", cerr)
		}
	}()

	for i, l := range listings {
		images, err := json.Marshal(l.Images)
		if err != nil {
			return fmt.Errorf("encoding images for %s: %w", l.ID, err)
		}
		amenities, err := json.Marshal(nonNil(l.Amenities))
		if err != nil {
			return fmt.Errorf("encoding amenities for %s: %w", l.ID, err)
		}
		_, err = stmt.Exec(
			l.ID, i, l.Title, l.Description, l.Price,
			l.Address, l.City, l.State, l.ZipCode,
			l.Location.Lat, l.Location.Lng,
			l.Bedrooms, l.Bathrooms, l.SquareFeet, l.YearBuilt,
			string(l.PropertyType), string(images), string(amenities),
			string(l.Status), l.Featured,
		)
		if err != nil {
			return fmt.Errorf("inserting listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing listings: %w", err)
	}
	return nil
}

// List returns every stored listing in catalog order.
func (r *Repository) List() (listings []*Listing, err error) {
	query := fmt.Sprintf("SELECT %s FROM listings ORDER BY position", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// Count returns the number of stored listings.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return n, nil
}

// Catalog loads the stored listings into an immutable catalog.
func (r *Repository) Catalog() (*Catalog, error) {
	listings, err := r.List()
	if err != nil {
		return nil, err
	}
	return NewCatalog(listings)
}

func scanListing(row interface{ Scan(...interface{}) error }) (*Listing, error) {
	var l Listing
	var propertyType, status, images, amenities string

	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Price,
		&l.Address, &l.City, &l.State, &l.ZipCode,
		&l.Location.Lat, &l.Location.Lng,
		&l.Bedrooms, &l.Bathrooms, &l.SquareFeet, &l.YearBuilt,
		&propertyType, &images, &amenities, &status, &l.Featured,
	)
	if err != nil {
		return nil, err
	}

	l.PropertyType = PropertyType(propertyType)
	l.Status = Status(status)
	if err := json.Unmarshal([]byte(images), &l.Images); err != nil {
		return nil, fmt.Errorf("decoding images for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal([]byte(amenities), &l.Amenities); err != nil {
		return nil, fmt.Errorf("decoding amenities for %s: %w", l.ID, err)
	}

	return &l, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
