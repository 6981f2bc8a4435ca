package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// Seeder populates an empty store with sample data so a fresh deployment has
// something to show. It is only ever run by the session, best-effort, when no
// pods exist yet.
type Seeder struct {
	pods     services.PodService
	posts    services.PostService
	rooms    services.RoomService
	startups services.StartupService
	gigs     services.GigService
	logger   *zap.Logger
}

func NewSeeder(pods services.PodService, posts services.PostService, rooms services.RoomService, startups services.StartupService, gigs services.GigService, logger *zap.Logger) *Seeder {
	return &Seeder{pods: pods, posts: posts, rooms: rooms, startups: startups, gigs: gigs, logger: logger}
}

// Run creates the sample pods, listings, posts and rooms. It stops at the
// first failure; partially seeded data is harmless and will not be retried
// because the pod collection is no longer empty.
func (s *Seeder) Run(ctx context.Context) error {
	s.logger.Info("seeding sample data")

	var aiPodID string
	for i, req := range samplePods() {
		pod, err := s.pods.CreatePod(ctx, req)
		if err != nil {
			return fmt.Errorf("seeding pod %q: %w", req.Name, err)
		}
		if i == 0 {
			aiPodID = pod.ID
		}
	}

	for _, req := range sampleGigs() {
		if _, err := s.gigs.CreateGig(ctx, req); err != nil {
			return fmt.Errorf("seeding gig %q: %w", req.Title, err)
		}
	}

	for _, req := range sampleStartups() {
		if _, err := s.startups.CreateStartup(ctx, req); err != nil {
			return fmt.Errorf("seeding startup %q: %w", req.Name, err)
		}
	}

	for _, req := range samplePosts(aiPodID) {
		if _, err := s.posts.CreatePost(ctx, req); err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}
	}

	for _, req := range sampleRooms() {
		if _, err := s.rooms.CreateRoom(ctx, req); err != nil {
			return fmt.Errorf("seeding room %q: %w", req.Name, err)
		}
	}

	s.logger.Info("sample data seeding completed")
	return nil
}

func samplePods() []*models.CreatePodRequest {
	return []*models.CreatePodRequest{
		{
			Name:        "AI Builders",
			Slug:        "ai-builders",
			Description: "Building the future with artificial intelligence and machine learning",
			Theme:       "from-blue-500 to-purple-600",
			Icon:        "Cpu",
			Events: []models.PodEvent{
				{Title: "AI Hackathon 2025", Date: "2025-02-15", Description: "Build AI solutions for real-world problems"},
			},
			PinnedResources: []models.PinnedResource{
				{Title: "TensorFlow Documentation", URL: "https://tensorflow.org", Type: "documentation"},
				{Title: "AI Research Papers", URL: "https://arxiv.org", Type: "research"},
			},
			IsActive: true,
		},
		{
			Name:        "Web3 Pioneers",
			Slug:        "web3-pioneers",
			Description: "Decentralizing the internet, one dApp at a time",
			Theme:       "from-purple-500 to-pink-600",
			Icon:        "Globe",
			Events: []models.PodEvent{
				{Title: "DeFi Demo Day", Date: "2025-02-20", Description: "Showcase your DeFi projects"},
			},
			PinnedResources: []models.PinnedResource{
				{Title: "Ethereum Documentation", URL: "https://ethereum.org", Type: "documentation"},
				{Title: "Solidity by Example", URL: "https://solidity-by-example.org", Type: "tutorial"},
			},
			IsActive: true,
		},
		{
			Name:        "Climate Tech",
			Slug:        "climate-tech",
			Description: "Solving climate change through innovative technology solutions",
			Theme:       "from-green-500 to-emerald-600",
			Icon:        "Leaf",
			Events: []models.PodEvent{
				{Title: "Climate Solutions Summit", Date: "2025-03-01", Description: "Collaborate on climate tech innovations"},
			},
			PinnedResources: []models.PinnedResource{
				{Title: "Climate Tech Handbook", URL: "https://climatetech.org", Type: "guide"},
			},
			IsActive: true,
		},
		{
			Name:        "Design Systems",
			Slug:        "design-systems",
			Description: "Creating beautiful, functional, and scalable design experiences",
			Theme:       "from-pink-500 to-red-600",
			Icon:        "Palette",
			PinnedResources: []models.PinnedResource{
				{Title: "Design System Checklist", URL: "https://designsystemchecklist.com", Type: "tool"},
			},
			IsActive: true,
		},
		{
			Name:        "FinTech Innovators",
			Slug:        "fintech-innovators",
			Description: "Revolutionizing financial services and payment systems",
			Theme:       "from-yellow-500 to-orange-600",
			Icon:        "DollarSign",
			IsActive:    true,
		},
	}
}

func sampleGigs() []*models.CreateGigRequest {
	return []*models.CreateGigRequest{
		{
			Title:        "Frontend Developer for E-commerce Platform",
			Description:  "We're looking for a skilled frontend developer to help build our next-generation e-commerce platform using React and TypeScript.",
			Tags:         []string{"React", "TypeScript", "Tailwind CSS"},
			Budget:       "$2,500 - $4,000",
			Duration:     "2-3 weeks",
			PostedBy:     "sample-user-1",
			Status:       models.GigOpen,
			Requirements: []string{"3+ years React experience", "TypeScript proficiency", "E-commerce experience preferred"},
		},
		{
			Title:        "UI/UX Designer for Mobile App",
			Description:  "Seeking a creative UI/UX designer to design a modern mobile application for our fitness platform.",
			Tags:         []string{"Figma", "Mobile Design", "Prototyping"},
			Budget:       "$1,800 - $3,200",
			Duration:     "3-4 weeks",
			PostedBy:     "sample-user-2",
			Status:       models.GigOpen,
			Requirements: []string{"Mobile design experience", "Figma expertise", "User research skills"},
		},
		{
			Title:        "Full-stack Developer for SaaS Platform",
			Description:  "Build a comprehensive SaaS platform with modern technologies including React, Node.js, and PostgreSQL.",
			Tags:         []string{"React", "Node.js", "PostgreSQL", "AWS"},
			Budget:       "$5,000 - $8,000",
			Duration:     "6-8 weeks",
			PostedBy:     "sample-user-3",
			Status:       models.GigOpen,
			Requirements: []string{"Full-stack experience", "Database design", "Cloud deployment"},
		},
	}
}

func sampleStartups() []*models.CreateStartupRequest {
	return []*models.CreateStartupRequest{
		{
			Name:         "HealthTech Innovations",
			Description:  "AI-powered healthcare assistant that helps doctors make better diagnoses using machine learning algorithms.",
			Industry:     "Healthcare",
			Stage:        "Seed Stage",
			Location:     "San Francisco, CA",
			CreatedBy:    "sample-user-1",
			Status:       models.StartupActive,
			Funding:      "$500K raised",
			Equity:       "2-5%",
			Requirements: []string{"React", "Node.js", "AI/ML", "Healthcare Experience"},
		},
		{
			Name:         "EcoWear",
			Description:  "Sustainable fashion marketplace connecting eco-conscious brands with consumers who care about the planet.",
			Industry:     "Fashion",
			Stage:        "Pre-Seed",
			Location:     "New York, NY",
			CreatedBy:    "sample-user-2",
			Status:       models.StartupActive,
			Funding:      "Seeking $250K",
			Equity:       "5-10%",
			Requirements: []string{"E-commerce", "Sustainability", "Marketing", "Fashion Industry"},
		},
		{
			Name:         "LearnSphere",
			Description:  "EdTech platform transforming online education with personalized learning experiences powered by advanced analytics.",
			Industry:     "Education",
			Stage:        "Series A",
			Location:     "Austin, TX",
			CreatedBy:    "sample-user-3",
			Status:       models.StartupActive,
			Funding:      "$2M raised",
			Equity:       "1-3%",
			Requirements: []string{"EdTech", "React", "Data Analytics", "Education"},
		},
	}
}

func samplePosts(podID string) []*models.CreatePostRequest {
	return []*models.CreatePostRequest{
		{
			PodID:    podID,
			UserID:   "sample-user-1",
			Content:  "Just launched our new computer vision model! Achieved 94% accuracy on the benchmark dataset. The breakthrough came from combining transformer architectures with novel attention mechanisms. Open sourcing it next week - excited to see what the community builds with it!",
			ImageURL: "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=500&h=300&fit=crop",
		},
		{
			PodID:   podID,
			UserID:  "sample-user-2",
			Content: "Looking for collaborators on a new NLP project focused on sentiment analysis for financial markets. We're exploring real-time processing of news feeds and social media to predict market movements. DM me if you have experience with transformers or financial data!",
		},
		{
			PodID:   podID,
			UserID:  "sample-user-3",
			Content: "Great article on transformer architectures and their applications in computer vision. The attention mechanism explanation is particularly clear and well-illustrated. Highly recommend for anyone getting started with vision transformers.",
		},
	}
}

func sampleRooms() []*models.CreateRoomRequest {
	return []*models.CreateRoomRequest{
		{
			Name:        "React Developers",
			Description: "Private room for React developers to share tips and collaborate on projects",
			Members:     []string{"sample-user-1"},
			CreatedBy:   "sample-user-1",
			IsPrivate:   true,
		},
		{
			Name:        "Startup Founders Network",
			Description: "Exclusive room for startup founders to discuss challenges and opportunities",
			Members:     []string{"sample-user-2"},
			CreatedBy:   "sample-user-2",
			IsPrivate:   true,
		},
		{
			Name:        "Design Feedback Circle",
			Description: "Get constructive feedback on your design work from fellow designers",
			Members:     []string{"sample-user-3"},
			CreatedBy:   "sample-user-3",
			IsPrivate:   false,
		},
	}
}
