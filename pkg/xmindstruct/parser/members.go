package parser

import (
	"sort"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// CountDescendants counts the members below topic. A red child is not
// counted itself, but its own descendants still are.
func CountDescendants(topic *models.Topic) int {
	if topic == nil {
		return 0
	}
	count := 0
	stack := IterChildTopics(&topic.Children)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !IsRedText(node.Style) {
			count++
		}
		stack = append(stack, IterChildTopics(&node.Children)...)
	}
	return count
}

// CollectGreenGroups returns a record for every green-filled topic under
// root, root included. Nested groups are reported independently.
func CollectGreenGroups(root *models.Topic, sheetTitle string) []models.GroupRecord {
	if root == nil {
		return nil
	}
	var groups []models.GroupRecord
	stack := []*models.Topic{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if IsGreenFill(node.Style) {
			groups = append(groups, models.GroupRecord{
				Sheet: sheetTitle,
				Title: CleanTopicTitle(node),
				Count: CountDescendants(node),
			})
		}
		stack = append(stack, IterChildTopics(&node.Children)...)
	}
	return groups
}

// SortGroups orders groups by member count, largest first.
func SortGroups(groups []models.GroupRecord) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
}
