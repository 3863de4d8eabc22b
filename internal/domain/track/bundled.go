package track

// ══════════════════════════════════════════════════════════════════════════════
// BUNDLED TRACKS
// Встроенные треки поставляются вместе с приложением и доступны без сети.
// Пользовательские треки с теми же ID перекрывают встроенные при слиянии.
// ══════════════════════════════════════════════════════════════════════════════

// BundledTracks возвращает свежую копию встроенных треков.
// Копия нужна, чтобы вызывающий код не мог изменить общие данные.
func BundledTracks() []Track {
	tracks := make([]Track, len(bundled))
	copy(tracks, bundled)
	return tracks
}

var bundled = []Track{
	{
		ID:    "chess-beginner",
		Title: "Beginner Chess Fundamentals",
		Checkpoints: []Checkpoint{
			{
				CheckpointID: 1,
				Title:        "The Board & Pieces",
				VideoURL:     "https://www.youtube.com/watch?v=OCSbzArwB10",
				Description:  "Learn how to set up the chessboard correctly and identify each piece.",
				CreatorName:  "Chess - Simplify",
				Outcomes: []string{
					"Understand the layout of the chessboard (ranks, files).",
					"Identify the name and starting position of each chess piece.",
					"Be able to set up the board correctly for a game.",
				},
			},
			{
				CheckpointID: 2,
				Title:        "Pawn Movement",
				VideoURL:     "https://www.youtube.com/watch?v=YdnvlntAQH8",
				Description:  "Covers how pawns move, including their initial two-step option and how they capture.",
				CreatorName:  "Chess - Simplify",
				Outcomes: []string{
					"Learn the standard forward movement of pawns.",
					"Understand the pawn's special first move.",
					"Know how pawns capture diagonally.",
				},
			},
			{
				CheckpointID: 3,
				Title:        "Rook Movement",
				VideoURL:     "https://www.youtube.com/watch?v=H764YiYKV_g",
				Description:  "Explains how the rook moves horizontally and vertically across the board.",
				CreatorName:  "Chess.com",
				Outcomes: []string{
					"Understand that rooks move in straight lines horizontally and vertically.",
					"Recognize that rooks can move any number of unoccupied squares.",
					"Learn how rooks capture opponent pieces.",
				},
			},
			{
				CheckpointID: 4,
				Title:        "Check & Checkmate Basics",
				VideoURL:     "https://www.youtube.com/watch?v=Ao9iOeK_jvU",
				Description:  "Introduces the concepts of check (attacking the king) and checkmate (winning the game).",
				CreatorName:  "Chess.com",
				Outcomes: []string{
					"Define \"check\" and identify when a king is in check.",
					"Understand the three ways to get out of check.",
					"Define \"checkmate\" and recognize it as the goal of the game.",
				},
			},
			{
				CheckpointID: 5,
				Title:        "Castling",
				VideoURL:     "https://www.youtube.com/watch?v=TemLSMDKSMw",
				Description:  "Explains the special move involving the king and rook, known as castling, and its conditions.",
				CreatorName:  "Chess.com",
				Outcomes: []string{
					"Learn the mechanics of kingside and queenside castling.",
					"Understand the conditions required to be able to castle.",
					"Recognize the strategic importance of castling for king safety.",
				},
			},
			{
				CheckpointID: 6,
				Title:        "Basic Opening Principles",
				VideoURL:     "https://www.youtube.com/watch?v=k6pE_jw-bJA",
				Description:  "Introduces fundamental chess opening rules like controlling the center and developing pieces.",
				CreatorName:  "GothamChess",
				Outcomes: []string{
					"Understand the importance of controlling the center squares.",
					"Learn why developing minor pieces (knights and bishops) early is crucial.",
					"Recognize the significance of king safety (often via castling) in the opening.",
				},
			},
		},
		Flashcards: []Flashcard{
			{
				Question:   "How many squares are on a standard chessboard?",
				Answer:     "64 (arranged in an 8x8 grid).",
				Difficulty: "easy",
			},
			{
				Question:   "Which chess piece moves in an 'L' shape?",
				Answer:     "The Knight.",
				Difficulty: "easy",
			},
			{
				Question:   "What is the special first move a pawn can make?",
				Answer:     "It can move forward two squares instead of one.",
				Difficulty: "medium",
			},
			{
				Question:   "Can a king castle if it is currently in check?",
				Answer:     "No, a king cannot castle out of, through, or into check.",
				Difficulty: "hard",
			},
			{
				Question:   "What does it mean to 'control the center' in chess?",
				Answer:     "Placing pieces (especially pawns and knights) in or attacking the central squares (d4, e4, d5, e5) to gain space and influence.",
				Difficulty: "medium",
			},
		},
	},
	{
		ID:    "guitar-basics",
		Title: "Campfire Guitar Chords",
		Checkpoints: []Checkpoint{
			{
				CheckpointID: 1,
				Title:        "Parts of the Guitar & Tuning",
				VideoURL:     "https://www.youtube.com/watch?v=6FXV8DDUTHY",
				Description:  "An overview of the different parts of an acoustic guitar and how to tune it to standard tuning (EADGBE).",
				CreatorName:  "Andy Guitar",
				Outcomes: []string{
					"Identify the main parts of an acoustic guitar (headstock, neck, body, etc.).",
					"Know the standard tuning string names (EADGBE).",
					"Understand the basic process of using a tuner.",
				},
			},
			{
				CheckpointID: 2,
				Title:        "Holding the Pick & First Strum",
				VideoURL:     "https://www.youtube.com/watch?v=ix9z6CLgc5w",
				Description:  "Demonstrates the proper technique for holding a guitar pick and performing basic down strums.",
				CreatorName:  "JustinGuitar",
				Outcomes: []string{
					"Learn a common and effective way to hold a guitar pick.",
					"Practice basic down-strumming technique.",
					"Develop initial strumming rhythm.",
				},
			},
			{
				CheckpointID: 3,
				Title:        "The E Minor Chord",
				VideoURL:     "https://www.youtube.com/watch?v=sleGNaE63oI",
				Description:  "Teaches how to play the E minor (Em) chord, often one of the first chords beginners learn.",
				CreatorName:  "Marty Music",
				Outcomes: []string{
					"Identify the correct finger placement for the E minor chord.",
					"Practice pressing down the strings cleanly to avoid buzzing.",
					"Be able to strum the E minor chord.",
				},
			},
			{
				CheckpointID: 4,
				Title:        "The C Major Chord",
				VideoURL:     "https://www.youtube.com/watch?v=oBVfrjVEsIo",
				Description:  "Covers the finger placement for the C major chord and common challenges.",
				CreatorName:  "GuitarLessons.com",
				Outcomes: []string{
					"Learn the finger placement for the C major chord.",
					"Understand which string is typically muted or avoided.",
					"Practice transitioning to and from the C major chord.",
				},
			},
			{
				CheckpointID: 5,
				Title:        "The G Major Chord",
				VideoURL:     "https://www.youtube.com/watch?v=W5SsismhQOE",
				Description:  "Teaches a common fingering for the G major chord.",
				CreatorName:  "Andy Guitar",
				Outcomes: []string{
					"Learn a standard finger placement for the G major chord.",
					"Practice achieving a clear sound with all notes ringing.",
					"Work on transitioning involving the G major chord.",
				},
			},
			{
				CheckpointID: 6,
				Title:        "Simple Chord Changes (Em -> C)",
				VideoURL:     "https://www.youtube.com/watch?v=gCvT7mwdf00",
				Description:  "Focuses on techniques and exercises for smoothly transitioning between E minor and C major chords.",
				CreatorName:  "JustinGuitar",
				Outcomes: []string{
					"Understand the concept of anchor fingers (if applicable).",
					"Practice minimizing finger movement during changes.",
					"Develop muscle memory for the Em to C transition.",
				},
			},
			{
				CheckpointID: 7,
				Title:        "The D Major Chord",
				VideoURL:     "https://www.youtube.com/watch?v=DfYFI9Pl_7s",
				Description:  "Teaches the finger placement for the D major chord, another essential beginner chord.",
				CreatorName:  "JustinGuitar",
				Outcomes: []string{
					"Learn the finger placement for the D major chord.",
					"Practice forming the triangular shape cleanly.",
					"Begin practicing transitions involving D major (e.g., G-C-D).",
				},
			},
			{
				CheckpointID: 8,
				Title:        "Basic Strumming Pattern (Down Down Up Up Down Up)",
				VideoURL:     "https://www.youtube.com/watch?v=zODRrt-b07s",
				Description:  "Introduces a very common and versatile strumming pattern used in many songs.",
				CreatorName:  "Andy Guitar",
				Outcomes: []string{
					"Learn the rhythm and timing of the D DU UDU pattern.",
					"Practice keeping a steady rhythm while strumming.",
					"Apply the strumming pattern to the learned chords (Em, C, G, D).",
				},
			},
		},
		Flashcards: []Flashcard{
			{
				Question:   "What are the notes of standard guitar tuning, from lowest pitch (thickest string) to highest?",
				Answer:     "E - A - D - G - B - E",
				Difficulty: "easy",
			},
			{
				Question:   "Which fingers typically fret the strings for an E minor (Em) chord?",
				Answer:     "The 2nd (middle) and 3rd (ring) fingers on the A and D strings at the 2nd fret.",
				Difficulty: "easy",
			},
			{
				Question:   "What is a common strumming pattern often abbreviated as D DU UDU?",
				Answer:     "Down, Down Up, Up Down Up.",
				Difficulty: "medium",
			},
			{
				Question:   "Which strings are usually played for a standard D Major chord?",
				Answer:     "The D, G, B, and high E strings (strings 4, 3, 2, 1). The A and low E strings are typically avoided.",
				Difficulty: "medium",
			},
		},
	},
	{
		ID:    "poker-intro",
		Title: "Poker Hand Rankings",
		Checkpoints: []Checkpoint{
			{
				CheckpointID: 1,
				Title:        "What is Poker?",
				VideoURL:     "https://www.youtube.com/watch?v=89rrbdPzx8g",
				Description:  "A brief introduction to the game of poker, focusing on Texas Hold'em basics and objectives.",
				CreatorName:  "PokerStars Learn",
				Outcomes: []string{
					"Understand the basic goal of poker (making the best hand or making others fold).",
					"Get a general overview of Texas Hold'em.",
					"Recognize poker as a game of skill and chance.",
				},
			},
			{
				CheckpointID: 2,
				Title:        "High Card & Pair",
				VideoURL:     "https://www.youtube.com/watch?v=wVVODJ323p0",
				Description:  "Explains the lowest hand rankings: High Card and One Pair.",
				CreatorName:  "Gripsed Poker",
				Outcomes: []string{
					"Define the High Card hand ranking.",
					"Define the One Pair hand ranking.",
					"Be able to compare High Card and One Pair hands.",
				},
			},
			{
				CheckpointID: 3,
				Title:        "Two Pair & Three of a Kind",
				VideoURL:     "https://www.youtube.com/watch?v=Opa5FghuT_I",
				Description:  "Covers the next hand rankings: Two Pair and Three of a Kind (Trips/Set).",
				CreatorName:  "Gripsed Poker",
				Outcomes: []string{
					"Define the Two Pair hand ranking.",
					"Define the Three of a Kind hand ranking.",
					"Understand that Three of a Kind beats Two Pair.",
				},
			},
			{
				CheckpointID: 4,
				Title:        "Straight & Flush",
				VideoURL:     "https://www.youtube.com/watch?v=JhhyaD1npbM",
				Description:  "Explains the Straight (sequence) and Flush (same suit) hand rankings.",
				CreatorName:  "Gripsed Poker",
				Outcomes: []string{
					"Define a Straight (five cards in sequential rank).",
					"Define a Flush (five cards of the same suit, not sequential).",
					"Understand that a Flush beats a Straight.",
				},
			},
			{
				CheckpointID: 5,
				Title:        "Full House & Four of a Kind",
				VideoURL:     "https://www.youtube.com/watch?v=YVvgj_-ZqZI",
				Description:  "Covers the powerful Full House (Three of a Kind + Pair) and Four of a Kind hands.",
				CreatorName:  "Gripsed Poker",
				Outcomes: []string{
					"Define a Full House.",
					"Define Four of a Kind.",
					"Understand that Four of a Kind beats a Full House.",
				},
			},
			{
				CheckpointID: 6,
				Title:        "Straight Flush & Royal Flush",
				VideoURL:     "https://www.youtube.com/watch?v=n-MG0gzXwis",
				Description:  "Explains the top-tier hands: Straight Flush and the unbeatable Royal Flush.",
				CreatorName:  "Gripsed Poker",
				Outcomes: []string{
					"Define a Straight Flush (sequential cards of the same suit).",
					"Define a Royal Flush (A-K-Q-J-10 of the same suit).",
					"Memorize the complete hand ranking order.",
				},
			},
			{
				CheckpointID: 7,
				Title:        "Betting Rounds Explained (Pre-flop, Flop, Turn, River)",
				VideoURL:     "https://www.youtube.com/watch?v=Pwnig2Fq4-A",
				Description:  "Explains the sequence of betting actions in a standard Texas Hold'em hand.",
				CreatorName:  "PokerStars Learn",
				Outcomes: []string{
					"Identify the four main betting rounds: Pre-flop, Flop, Turn, and River.",
					"Understand when community cards are dealt in relation to betting rounds.",
					"Learn the basic options available during a betting round (check, bet, call, raise, fold).",
				},
			},
		},
		Flashcards: []Flashcard{
			{
				Question:   "What is the highest possible hand in standard poker?",
				Answer:     "A Royal Flush (Ace, King, Queen, Jack, Ten of the same suit).",
				Difficulty: "easy",
			},
			{
				Question:   "Which hand is stronger: a Straight or a Flush?",
				Answer:     "A Flush (all cards of the same suit) beats a Straight (cards in sequence).",
				Difficulty: "easy",
			},
			{
				Question:   "What combination of cards makes a Full House?",
				Answer:     "Three cards of one rank and two cards of another rank (e.g., 3 Aces and 2 Kings).",
				Difficulty: "medium",
			},
			{
				Question:   "How many community cards are dealt on the 'Flop' in Texas Hold'em?",
				Answer:     "Three cards.",
				Difficulty: "easy",
			},
			{
				Question:   "What are the four standard betting rounds in a Texas Hold'em hand?",
				Answer:     "Pre-flop, Flop, Turn, and River.",
				Difficulty: "medium",
			},
		},
	},
}
