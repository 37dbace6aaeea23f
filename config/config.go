package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type sheet struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type store struct {
	Name             string `mapstructure:"name"`
	WhatsAppNumber   string `mapstructure:"whatsapp_number"`
	Currency         string `mapstructure:"currency"`
	Locale           string `mapstructure:"locale"`
	PlaceholderImage string `mapstructure:"placeholder_image"`
	FallbackCategory string `mapstructure:"fallback_category"`
	MinStockGood     int    `mapstructure:"min_stock_good"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	CartFile       string     `mapstructure:"cart_file"`
	Sheet          sheet      `mapstructure:"sheet"`
	Store          store      `mapstructure:"store"`
}

func Load() Config {
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("cart_file", "storefront_cart_v1.json")
	viper.SetDefault("sheet.name", "Products")
	viper.SetDefault("store.currency", "IDR")
	viper.SetDefault("store.locale", "id")
	viper.SetDefault("store.placeholder_image", "assets/placeholder.png")
	viper.SetDefault("store.fallback_category", "Parts")
	viper.SetDefault("store.min_stock_good", 5)

	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CartFile=%q

	Sheet:
	ID=%q
	Name=%q

	Store:
	Name=%q
	WhatsAppNumber=%q
	Currency=%q
	Locale=%q
	PlaceholderImage=%q
	FallbackCategory=%q
	MinStockGood=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CartFile,
		c.Sheet.ID,
		c.Sheet.Name,
		c.Store.Name,
		c.Store.WhatsAppNumber,
		c.Store.Currency,
		c.Store.Locale,
		c.Store.PlaceholderImage,
		c.Store.FallbackCategory,
		c.Store.MinStockGood,
	)
}
