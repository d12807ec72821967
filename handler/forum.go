package handler

import (
	"Arena/config"
	"Arena/pkg/context"
	"Arena/pkg/response"
	"Arena/service"

	"github.com/gin-gonic/gin"
)

// Forum serves the read model of every server-rendered page.
type Forum struct {
	Config *config.Config
	Pages  service.IPageService
}

func (h *Forum) RegisterRouter(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.GET("/forum", context.Wrap(h.Home))
	v1.GET("/sidebar", context.Wrap(h.Sidebar))
	v1.GET("/categories", context.Wrap(h.Categories))
	v1.GET("/categories/:slug", context.Wrap(h.Category))
	v1.GET("/categories/:slug/:subslug", context.Wrap(h.Category))
	v1.GET("/topics", context.Wrap(h.Topics))
	v1.GET("/topics/:id", context.Wrap(h.TopicByID))
	v1.GET("/t/:category/:slug", context.Wrap(h.TopicBySlug))
	v1.GET("/t/:category/:slug/:topic", context.Wrap(h.TopicBySlug))
}

func (h *Forum) pageQuery(c *gin.Context) (int, int) {
	return context.QueryInt(c, "page", 1), context.QueryInt(c, "limit", h.Config.Cache.DefaultLimit)
}

func (h *Forum) Home(c *gin.Context) error {
	data, err := h.Pages.GetInitialForumData(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, data)
	return nil
}

func (h *Forum) Sidebar(c *gin.Context) error {
	data, err := h.Pages.GetInitialSidebarData(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, data)
	return nil
}

func (h *Forum) Categories(c *gin.Context) error {
	data, err := h.Pages.GetInitialCategoriesPageData(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, data)
	return nil
}

func (h *Forum) Category(c *gin.Context) error {
	page, limit := h.pageQuery(c)
	data, err := h.Pages.GetInitialCategoryData(c.Request.Context(), c.Param("slug"), c.Param("subslug"), page, limit)
	if err != nil {
		return err
	}
	if data.Category == nil {
		response.NotFound(c, "category not found", data)
		return nil
	}
	response.Success(c, data)
	return nil
}

func (h *Forum) Topics(c *gin.Context) error {
	page, limit := h.pageQuery(c)
	orderBy := c.DefaultQuery("orderBy", service.OrderCreatedAt)
	ascending := context.QueryBool(c, "ascending", false)

	data, err := h.Pages.GetInitialTopicsPageData(c.Request.Context(), page, limit, orderBy, ascending)
	if err != nil {
		return err
	}
	response.Success(c, data)
	return nil
}

func (h *Forum) TopicByID(c *gin.Context) error {
	return h.topic(c, service.TopicLookup{ID: c.Param("id")})
}

// TopicBySlug serves /t/:category/:topic and /t/:category/:subcategory/:topic.
// slug is the topic in the short form and the subcategory in the long one.
func (h *Forum) TopicBySlug(c *gin.Context) error {
	lookup := service.TopicLookup{CategorySlug: c.Param("category"), TopicSlug: c.Param("slug")}
	if topic := c.Param("topic"); topic != "" {
		lookup.SubcategorySlug, lookup.TopicSlug = lookup.TopicSlug, topic
	}
	return h.topic(c, lookup)
}

func (h *Forum) topic(c *gin.Context, lookup service.TopicLookup) error {
	page, limit := h.pageQuery(c)
	data, err := h.Pages.GetInitialTopicData(c.Request.Context(), lookup, page, limit)
	if err != nil {
		return err
	}
	if data.Topic == nil {
		response.NotFound(c, "topic not found", data)
		return nil
	}
	response.Success(c, data)
	return nil
}
