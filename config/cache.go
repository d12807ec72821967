package config

import "time"

// Cache holds read-through cache TTLs (seconds) and page sizes.
// Topic and post lists are volatile, category and settings metadata is not.
type Cache struct {
	Prefix string `json:"prefix" yaml:"prefix"`

	TopicListTTL    int `json:"topic_list_ttl" yaml:"topic_list_ttl"`
	TopicPageTTL    int `json:"topic_page_ttl" yaml:"topic_page_ttl"`
	CategoryPageTTL int `json:"category_page_ttl" yaml:"category_page_ttl"`
	CategoryTTL     int `json:"category_ttl" yaml:"category_ttl"`
	SettingsTTL     int `json:"settings_ttl" yaml:"settings_ttl"`
	SidebarTTL      int `json:"sidebar_ttl" yaml:"sidebar_ttl"`

	HomeTopicLimit int `json:"home_topic_limit" yaml:"home_topic_limit"`
	DefaultLimit   int `json:"default_limit" yaml:"default_limit"`
	MaxLimit       int `json:"max_limit" yaml:"max_limit"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (c *Cache) TopicList() time.Duration    { return seconds(c.TopicListTTL) }
func (c *Cache) TopicPage() time.Duration    { return seconds(c.TopicPageTTL) }
func (c *Cache) CategoryPage() time.Duration { return seconds(c.CategoryPageTTL) }
func (c *Cache) Category() time.Duration     { return seconds(c.CategoryTTL) }
func (c *Cache) Settings() time.Duration     { return seconds(c.SettingsTTL) }
func (c *Cache) Sidebar() time.Duration      { return seconds(c.SidebarTTL) }

func (c *Cache) withDefaults() {
	def := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&c.TopicListTTL, 60)
	def(&c.TopicPageTTL, 30)
	def(&c.CategoryPageTTL, 60)
	def(&c.CategoryTTL, 600)
	def(&c.SettingsTTL, 3600)
	def(&c.SidebarTTL, 300)
	def(&c.HomeTopicLimit, 10)
	def(&c.DefaultLimit, 20)
	def(&c.MaxLimit, 100)
}

// Default returns a configuration with every default applied and no
// external services configured.
func Default() *Config {
	c := &Config{}
	c.applyEnv(func(string) string { return "" })
	c.withDefaults()
	return c
}
