// Package serialize converts store-native values (numeric ids, timestamps,
// nested documents) into plain transport-safe values. The conversion is a
// visitor over a closed set of kinds: identifier, timestamp, sequence,
// mapping and scalar. Applying it to an already-serialized tree is a no-op,
// so double serialization is safe.
package serialize

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sitecraft/internal/db"
)

// idKey 是标识符字段的统一键名，序列化时总是显式转换
const idKey = "id"

// Value 递归序列化任意值树。标量原样返回。
func Value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return Timestamp(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return Timestamp(*val)
	case uuid.UUID:
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case map[string]any:
		return Mapping(val)
	default:
		return val
	}
}

// Mapping 逐键序列化一个映射。标识符键单独处理，
// 通用循环跳过它以避免二次转换。
func Mapping(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	if raw, ok := m[idKey]; ok {
		out[idKey] = Identifier(raw)
	}
	for key, val := range m {
		if key == idKey {
			continue
		}
		out[key] = Value(val)
	}
	return out
}

// Identifier 将存储层标识符转为其规范字符串表示。
// 已是字符串的标识符原样返回，保证幂等。
func Identifier(v any) any {
	switch id := v.(type) {
	case nil:
		return nil
	case string:
		return id
	case uint:
		return strconv.FormatUint(uint64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case int:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case uuid.UUID:
		return id.String()
	default:
		return id
	}
}

// Timestamp 将时间转为 ISO-8601 (RFC 3339) 字符串。
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return Timestamp(*t)
}

// Page 将页面模型转为传输形式。版块保持 Order 升序。
func Page(p *db.Page) map[string]any {
	if p == nil {
		return nil
	}

	sections := make([]any, len(p.Sections))
	for i := range p.Sections {
		sections[i] = Section(p.Sections[i])
	}

	return map[string]any{
		idKey:           Identifier(p.ID),
		"title":         p.Title,
		"slug":          p.Slug,
		"description":   p.Description,
		"content":       p.Content,
		"isAIGenerated": p.IsAIGenerated,
		"sections":      sections,
		"isPublished":   p.IsPublished,
		"publishedAt":   optionalTimestamp(p.PublishedAt),
		"metaTags": map[string]any{
			"keywords":      p.Meta.Keywords,
			"ogTitle":       p.Meta.OGTitle,
			"ogDescription": p.Meta.OGDescription,
			"ogImage":       p.Meta.OGImage,
		},
		"createdAt": Timestamp(p.CreatedAt),
		"updatedAt": Timestamp(p.UpdatedAt),
	}
}

// Pages 序列化页面列表，保持顺序与长度。
func Pages(pages []db.Page) []map[string]any {
	out := make([]map[string]any, len(pages))
	for i := range pages {
		out[i] = Page(&pages[i])
	}
	return out
}

// Section 将单个版块转为传输形式。
func Section(s db.Section) map[string]any {
	items := make([]any, len(s.Items))
	for i, item := range s.Items {
		items[i] = map[string]any{
			"title":      item.Title,
			"subtitle":   item.Subtitle,
			"content":    item.Content,
			"imageUrl":   item.ImageURL,
			"icon":       item.Icon,
			"buttonText": item.ButtonText,
			"buttonLink": item.ButtonLink,
			"order":      item.Order,
		}
	}

	images := make([]any, len(s.Images))
	for i, url := range s.Images {
		images[i] = url
	}

	return map[string]any{
		"type":            s.Type,
		"title":           s.Title,
		"subtitle":        s.Subtitle,
		"content":         s.Content,
		"imageUrl":        s.ImageURL,
		"buttonText":      s.ButtonText,
		"buttonLink":      s.ButtonLink,
		"backgroundColor": s.BackgroundColor,
		"textColor":       s.TextColor,
		"style":           s.Style,
		"images":          images,
		"items":           items,
		"order":           s.Order,
	}
}

// Slider 将轮播图模型转为传输形式。
func Slider(s *db.Slider) map[string]any {
	if s == nil {
		return nil
	}

	images := make([]any, len(s.Images))
	for i, img := range s.Images {
		images[i] = map[string]any{
			"imageUrl":   img.ImageURL,
			"title":      img.Title,
			"subtitle":   img.Subtitle,
			"buttonText": img.ButtonText,
			"buttonLink": img.ButtonLink,
			"order":      img.Order,
		}
	}

	return map[string]any{
		idKey:         Identifier(s.ID),
		"name":        s.Name,
		"description": s.Description,
		"width":       s.Width,
		"height":      s.Height,
		"interval":    s.Interval,
		"images":      images,
		"createdAt":   Timestamp(s.CreatedAt),
		"updatedAt":   Timestamp(s.UpdatedAt),
	}
}

// Sliders 序列化轮播图列表。
func Sliders(sliders []db.Slider) []map[string]any {
	out := make([]map[string]any, len(sliders))
	for i := range sliders {
		out[i] = Slider(&sliders[i])
	}
	return out
}
