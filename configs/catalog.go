package config

// CategorySpec はカテゴリごとの商品リストと有効な価格帯を表します。
type CategorySpec struct {
	Products []string `json:"products"`
	PriceMin float64  `json:"price_min"`
	PriceMax float64  `json:"price_max"`
}

// Catalog は商品カタログです。起動時に一度構築され、以降は読み取り専用です。
// カテゴリの列挙順序を保持するため、名前リストとマップを分けて持ちます。
type Catalog struct {
	categoryNames []string
	specs         map[string]CategorySpec
}

// NewCatalog はカテゴリ名の順序付きリストと仕様マップからカタログを構築します。
func NewCatalog(categoryNames []string, specs map[string]CategorySpec) *Catalog {
	names := make([]string, len(categoryNames))
	copy(names, categoryNames)

	cloned := make(map[string]CategorySpec, len(specs))
	for name, spec := range specs {
		products := make([]string, len(spec.Products))
		copy(products, spec.Products)
		cloned[name] = CategorySpec{
			Products: products,
			PriceMin: spec.PriceMin,
			PriceMax: spec.PriceMax,
		}
	}

	return &Catalog{
		categoryNames: names,
		specs:         cloned,
	}
}

// CategoryNames はカテゴリ名を列挙順で返します。
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.categoryNames))
	copy(names, c.categoryNames)
	return names
}

// ProductNames は全カテゴリの商品名をカタログの列挙順で連結して返します。
func (c *Catalog) ProductNames() []string {
	var products []string
	for _, category := range c.categoryNames {
		products = append(products, c.specs[category].Products...)
	}
	return products
}

// Spec はカテゴリの仕様を返します。
func (c *Catalog) Spec(category string) (CategorySpec, bool) {
	spec, ok := c.specs[category]
	if !ok {
		return CategorySpec{}, false
	}
	products := make([]string, len(spec.Products))
	copy(products, spec.Products)
	spec.Products = products
	return spec, true
}

// PriceRange は商品名からその商品が属するカテゴリの価格帯を引きます。
// 商品がどのカテゴリにも見つからない場合は ok=false を返します。
func (c *Catalog) PriceRange(productName string) (priceMin, priceMax float64, ok bool) {
	for _, category := range c.categoryNames {
		spec := c.specs[category]
		for _, product := range spec.Products {
			if product == productName {
				return spec.PriceMin, spec.PriceMax, true
			}
		}
	}
	return 0, 0, false
}

// ToMap は /config エンドポイント向けにカタログ全体をマップで返します。
func (c *Catalog) ToMap() map[string]CategorySpec {
	out := make(map[string]CategorySpec, len(c.specs))
	for name := range c.specs {
		spec, _ := c.Spec(name)
		out[name] = spec
	}
	return out
}

// DefaultCatalog は組み込みの小売カタログ（4カテゴリ×20商品）を返します。
func DefaultCatalog() *Catalog {
	names := []string{
		"Smartphones & Tablets",
		"Laptops & Computers",
		"Wearables & Gadgets",
		"Home & Kitchen",
	}
	specs := map[string]CategorySpec{
		"Smartphones & Tablets": {
			Products: []string{
				"iPhone 15 Pro", "Galaxy S23 Ultra", "Google Pixel 8 Pro", "OnePlus 12",
				"Xiaomi 14 Ultra", "iPhone SE 3", "Galaxy Z Flip 5", "Samsung Z Fold 5",
				"iPad Air", "iPad Mini 6", "Surface Pro 9", "Galaxy Tab S9",
				"Lenovo Tab P12 Pro", "Asus ROG Phone 8", "Motorola Razr+",
				"Nokia G400", "Pixel 7a", "Galaxy A54 5G", "Google Pixel Fold",
				"Galaxy Tab A9",
			},
			PriceMin: 300, PriceMax: 1600,
		},
		"Laptops & Computers": {
			Products: []string{
				"MacBook Pro M3", "Dell XPS 15", "Lenovo ThinkPad X1 Carbon", "HP Spectre x360",
				"Asus Zenbook 14", "Surface Laptop 5", "Razer Blade 16", "Alienware m18",
				"Acer Swift Go 14", "LG Gram 17", "Dell Inspiron 16", "HP Envy x360",
				"Lenovo Yoga 7i", "Asus Vivobook 15", "Acer Aspire 5", "Gateway 15.6 Laptop",
				"Chromebook Duet 5", "MSI Thin GF63", "Dell G15 Gaming", "Lenovo Legion 5i",
			},
			PriceMin: 500, PriceMax: 2800,
		},
		"Wearables & Gadgets": {
			Products: []string{
				"Apple Watch Ultra 2", "Galaxy Watch 6", "Google Pixel Watch 2", "Fitbit Sense 2",
				"Garmin Forerunner 965", "Oura Ring Gen3", "Whoop 4.0", "Withings ScanWatch 2",
				"Amazfit GTR 4", "Suunto Vertical", "Polar Vantage V3", "Coros Pace 3",
				"Garmin Fenix 7 Pro", "Samsung Buds2 Pro", "Apple AirPods Pro 2",
				"Bose QuietComfort", "JBL Live 670NC", "Sony WH-1000XM5",
				"Anker Soundcore Space", "Beats Studio Pro",
			},
			PriceMin: 100, PriceMax: 600,
		},
		"Home & Kitchen": {
			Products: []string{
				"Dyson V15 Detect", "Shark Stratos Cordless", "iRobot Roomba j7+",
				"Roborock S8 Pro Ultra", "Eufy RoboVac 11S", "Keurig K-Elite",
				"Breville Barista Express", "Nespresso VertuoPlus", "Vitamix Ascent Series",
				"Ninja Foodi 8-in-1", "Instant Pot Duo Crisp", "Cuisinart Air Fryer",
				"KitchenAid Artisan Mixer", "Zojirushi Rice Cooker", "Philips Pasta Maker",
				"Cuisinart Coffee Center", "Hamilton Beach FlexBrew", "NutriBullet Pro",
				"Oster Versa Blender", "Ninja Professional Blender",
			},
			PriceMin: 50, PriceMax: 1200,
		},
	}
	return NewCatalog(names, specs)
}
