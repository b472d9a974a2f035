package parser

import "github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"

// IterChildTopics flattens a children value into one ordered sequence.
// Keyed groups are visited in document order, each in array order.
func IterChildTopics(children *models.ChildSet) []*models.Topic {
	if children == nil {
		return nil
	}
	switch children.Kind {
	case models.ChildrenList:
		topics := make([]*models.Topic, 0, len(children.List))
		for i := range children.List {
			topics = append(topics, &children.List[i])
		}
		return topics
	case models.ChildrenKeyed:
		var topics []*models.Topic
		for g := range children.Groups {
			group := &children.Groups[g]
			for i := range group.Topics {
				topics = append(topics, &group.Topics[i])
			}
		}
		return topics
	}
	return nil
}
