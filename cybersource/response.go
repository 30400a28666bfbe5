package cybersource

import (
	"strings"

	"github.com/devanandersen/active-merchant/internal/xmldoc"
	"github.com/devanandersen/active-merchant/models"
)

// parseReply flattens a processor reply into a ReplyMap.
//
// Two root shapes are recognized: a normal replyMessage tree, or a SOAP
// Fault. Anything else, including unparseable bytes, yields an empty map;
// the dispatcher turns that into a non-success result, never an error.
func parseReply(raw []byte) models.ReplyMap {
	reply := models.ReplyMap{}
	doc, err := xmldoc.Parse(raw)
	if err != nil {
		return reply
	}
	if root := doc.Find("replyMessage"); root != nil {
		for _, node := range root.Children {
			if node.Tag == "reasonCode" {
				// The top-level reason code doubles as the fallback message;
				// the table lookup happens later, against the nested copy.
				reply["message"] = node.Text
				continue
			}
			flatten(reply, root, node)
		}
		return reply
	}
	if fault := doc.Find("Fault"); fault != nil {
		flatten(reply, nil, fault)
		reply["message"] = reply["faultcode"] + ": " + reply["faultstring"]
		return reply
	}
	return reply
}

// flatten walks the tree depth-first, storing each leaf under its derived
// key. Identical keys are last-write-wins; the schema only legitimately
// repeats element names inside indexed item containers, which get distinct
// keys.
func flatten(reply models.ReplyMap, parent, node *xmldoc.Element) {
	if len(node.Children) > 0 {
		for _, child := range node.Children {
			flatten(reply, node, child)
		}
		return
	}
	reply[flatKey(parent, node)] = node.Text
}

// flatKey derives a leaf's key: leaves under an "item" container are
// prefixed with the container tag and its positional id so repeated items
// stay distinct; everyone else keys by its own tag.
func flatKey(parent, node *xmldoc.Element) string {
	if parent == nil || !strings.Contains(parent.Tag, "item") {
		return node.Tag
	}
	key := parent.Tag
	if id, ok := parent.AttrValue("id"); ok {
		key += "_" + id
	}
	return key + "_" + node.Tag
}
