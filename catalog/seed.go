package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var seedYAML []byte

type catalogFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Rating      string `yaml:"rating"`
	Reviews     int    `yaml:"reviews"`
	InStock     bool   `yaml:"inStock"`
}

func (r productRecord) toProduct() (Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %q: price %q: %w", r.ID, r.Price, err)
	}
	p := Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Image:       r.Image,
		Category:    r.Category,
		Reviews:     r.Reviews,
		InStock:     r.InStock,
	}
	if r.Rating != "" {
		rating, err := decimal.NewFromString(r.Rating)
		if err != nil {
			return Product{}, fmt.Errorf("product %q: rating %q: %w", r.ID, r.Rating, err)
		}
		p.Rating = decimal.NewNullDecimal(rating)
	}
	return p, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	products := make([]Product, 0, len(file.Products))
	for _, r := range file.Products {
		p, err := r.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return New(products)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in reference catalog.
func Default() *Catalog {
	c, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}
