// Package sample provides a static mind map for demos and tests.
package sample

import "github.com/alexanderramin/mindcanvas/internal/domain"

// Name is the display name of the sample map.
const Name = "Smart home product brainstorm"

// MindMap returns a fresh copy of the sample tree. Callers may mutate it.
func MindMap() *domain.MindNode {
	return &domain.MindNode{
		ID: "root", Title: "Smart home product brainstorm", X: 600, Y: 260,
		Children: []*domain.MindNode{
			{
				ID: "market", Title: "Market demand", X: 900, Y: 160,
				Children: []*domain.MindNode{
					{ID: "convenience", Title: "Convenience: task automation", X: 1150, Y: 80},
					{ID: "saving", Title: "Savings: lower power bills", X: 1150, Y: 160},
					{ID: "security", Title: "Security: home protection", X: 1150, Y: 240},
				},
			},
			{
				ID: "tech", Title: "Technical feasibility", X: 900, Y: 320,
				Children: []*domain.MindNode{
					{ID: "chip", Title: "High-performance SoC", X: 1150, Y: 320},
					{
						ID: "protocol", Title: "Multi-protocol support", X: 1150, Y: 400,
						Children: []*domain.MindNode{
							{ID: "matter", Title: "Matter", X: 1400, Y: 360},
							{ID: "zigbee", Title: "Zigbee", X: 1400, Y: 440},
						},
					},
				},
			},
			{
				ID: "design", Title: "Design concept", X: 300, Y: 200,
				Children: []*domain.MindNode{
					{ID: "style", Title: "Minimal aesthetics", X: 100, Y: 140},
					{ID: "ux", Title: "User experience", X: 100, Y: 220},
				},
			},
			{ID: "cost", Title: "Cost estimate", X: 300, Y: 340},
			{
				ID: "launch", Title: "Go-to-market", X: 600, Y: 460,
				Children: []*domain.MindNode{
					{ID: "pilot", Title: "Pilot households", X: 850, Y: 500},
				},
			},
		},
	}
}
